// Package web es la interfaz HTML del CRM. Cada entidad tiene sus páginas
// listar, agregar, actualizar y eliminar, que llaman al proxy REST/SQL.
package web

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"crm/api"
	"crm/handlers"
	"crm/vistas"
)

// Mensajes mostrados cuando el API responde 400.
const (
	MsgErrorAgregar    = "Se ha producido un error al agregar"
	MsgErrorActualizar = "Se ha producido un error al actualizar"
	MsgErrorEliminar   = "No es posible eliminar. Registro está siendo utilizado."
	MsgSinConexion     = "No fue posible comunicarse con el API"
	MsgNoEncontrado    = "Registro no encontrado"
	MsgIDInvalido      = "ID inválido"
	MsgDatosInvalidos  = "Datos inválidos"
)

// Web agrupa las dependencias de los manejadores HTML.
type Web struct {
	API    *api.Client
	Vistas *vistas.Vistas
	Logger *zap.Logger
	// Ahora da la hora con la que se llena fecha_registro al crear.
	Ahora func() time.Time

	modulos []modulo
}

// modulo es una entidad con sus cuatro páginas.
type modulo interface {
	registrar(r *mux.Router)
	enlace() vistas.Enlace
}

// New arma la interfaz con todas las entidades.
func New(c *api.Client, v *vistas.Vistas, logger *zap.Logger) *Web {
	w := &Web{API: c, Vistas: v, Logger: logger, Ahora: time.Now}
	w.modulos = []modulo{
		moduloCliente(w),
		moduloUsuario(w),
		moduloGestion(w),
		moduloResultado(w),
		moduloTipoGestion(w),
	}
	return w
}

// Router devuelve el manejador HTTP de la interfaz.
func (w *Web) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", w.Inicio).Methods("GET")
	for _, m := range w.modulos {
		m.registrar(r)
	}
	return handlers.RegistrarSolicitudes(w.Logger)(r)
}

// Inicio maneja GET /
func (w *Web) Inicio(rw http.ResponseWriter, r *http.Request) {
	datos := vistas.Inicio{Pagina: vistas.Pagina{Titulo: "CRM Gestiones"}}
	for _, m := range w.modulos {
		datos.Enlaces = append(datos.Enlaces, m.enlace())
	}
	w.render(rw, http.StatusOK, "inicio", datos)
}

// render escribe la página en un buffer para poder responder 500 si la plantilla falla.
func (w *Web) render(rw http.ResponseWriter, estado int, pagina string, datos any) {
	var buf bytes.Buffer
	if err := w.Vistas.Render(&buf, pagina, datos); err != nil {
		w.Logger.Error("Error renderizando página", zap.String("pagina", pagina), zap.Error(err))
		http.Error(rw, "Error al generar la página", http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(estado)
	buf.WriteTo(rw)
}

func (w *Web) renderError(rw http.ResponseWriter, estado int, mensaje string) {
	w.render(rw, estado, "error", vistas.Pagina{Titulo: "Error", Alerta: mensaje})
}
