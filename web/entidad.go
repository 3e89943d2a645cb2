package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"crm/api"
	"crm/utils"
	"crm/vistas"
)

// entidad describe cómo se lista, edita y elimina un tipo de registro.
type entidad[T any] struct {
	w *Web

	ruta     string // segmento de la URL y sufijo del id de la tabla
	titulo   string // título del listado
	singular string // "resultado", usado en los títulos de los formularios
	pregunta string // pregunta de la página de eliminación

	recurso     *api.Recurso[T]
	encabezados []string
	fila        func(T) vistas.Fila
	nombre      func(T) string
	// campos arma el formulario con los valores de v (cero al agregar).
	campos func(ctx context.Context, v T) ([]vistas.Campo, error)
	// leer interpreta el formulario enviado.
	leer func(f url.Values) (T, error)
	// fechar fija fecha_registro al crear.
	fechar func(v *T, fecha string)
	// listar reemplaza recurso.Listar cuando el listado sale de una consulta de unión.
	listar func(ctx context.Context) ([]vistas.Fila, error)
}

func (e *entidad[T]) enlace() vistas.Enlace {
	return vistas.Enlace{URL: "/" + e.ruta + "/listar", Texto: e.titulo}
}

func (e *entidad[T]) registrar(r *mux.Router) {
	s := r.PathPrefix("/" + e.ruta).Subrouter()
	s.HandleFunc("/listar", e.Listar).Methods("GET")
	s.HandleFunc("/agregar", e.FormularioAgregar).Methods("GET")
	s.HandleFunc("/agregar", e.Agregar).Methods("POST")
	s.HandleFunc("/actualizar", e.FormularioActualizar).Methods("GET")
	s.HandleFunc("/actualizar", e.Actualizar).Methods("POST")
	s.HandleFunc("/eliminar", e.ConfirmarEliminar).Methods("GET")
	s.HandleFunc("/eliminar", e.Eliminar).Methods("POST")
}

// Listar maneja GET /{entidad}/listar
func (e *entidad[T]) Listar(rw http.ResponseWriter, r *http.Request) {
	var filas []vistas.Fila
	var err error
	if e.listar != nil {
		filas, err = e.listar(r.Context())
	} else {
		var lista []T
		lista, err = e.recurso.Listar(r.Context())
		for _, v := range lista {
			filas = append(filas, e.fila(v))
		}
	}
	if err != nil {
		e.fallo(rw, "Error listando", err)
		return
	}
	e.w.render(rw, http.StatusOK, "listar", vistas.Listado{
		Pagina: vistas.Pagina{Titulo: e.titulo},
		Tabla: vistas.Tabla{
			ID:          "tbl_" + e.ruta,
			Encabezados: e.encabezados,
			Filas:       filas,
		},
	})
}

// FormularioAgregar maneja GET /{entidad}/agregar
func (e *entidad[T]) FormularioAgregar(rw http.ResponseWriter, r *http.Request) {
	var cero T
	e.formulario(rw, r, http.StatusOK, "Agregar "+e.singular, "Agregar", cero, "")
}

// Agregar maneja POST /{entidad}/agregar
func (e *entidad[T]) Agregar(rw http.ResponseWriter, r *http.Request) {
	v, ok := e.leerFormulario(rw, r, "Agregar "+e.singular, "Agregar")
	if !ok {
		return
	}
	e.fechar(&v, utils.FechaHoraActual(e.w.Ahora()))
	if _, err := e.recurso.Crear(r.Context(), v); err != nil {
		if errors.Is(err, api.ErrRechazado) {
			e.w.Logger.Warn("Alta rechazada", zap.String("tabla", e.recurso.Tabla()), zap.Error(err))
			e.formulario(rw, r, http.StatusBadRequest, "Agregar "+e.singular, "Agregar", v, MsgErrorAgregar)
			return
		}
		e.fallo(rw, "Error agregando", err)
		return
	}
	http.Redirect(rw, r, "listar", http.StatusSeeOther)
}

// FormularioActualizar maneja GET /{entidad}/actualizar?id=
func (e *entidad[T]) FormularioActualizar(rw http.ResponseWriter, r *http.Request) {
	id, ok := e.id(rw, r)
	if !ok {
		return
	}
	v, err := e.recurso.Obtener(r.Context(), id)
	if err != nil {
		e.fallo(rw, "Error obteniendo registro", err)
		return
	}
	e.formulario(rw, r, http.StatusOK, "Actualizar "+e.singular, "Actualizar", v, "")
}

// Actualizar maneja POST /{entidad}/actualizar?id=
func (e *entidad[T]) Actualizar(rw http.ResponseWriter, r *http.Request) {
	id, ok := e.id(rw, r)
	if !ok {
		return
	}
	v, ok := e.leerFormulario(rw, r, "Actualizar "+e.singular, "Actualizar")
	if !ok {
		return
	}
	resp, err := e.recurso.Actualizar(r.Context(), id, v)
	if err != nil {
		if errors.Is(err, api.ErrRechazado) {
			e.w.Logger.Warn("Actualización rechazada", zap.String("tabla", e.recurso.Tabla()), zap.Int("id", id), zap.Error(err))
			e.formulario(rw, r, http.StatusBadRequest, "Actualizar "+e.singular, "Actualizar", v, MsgErrorActualizar)
			return
		}
		e.fallo(rw, "Error actualizando", err)
		return
	}
	if resp.AffectedRows == 0 {
		e.w.renderError(rw, http.StatusNotFound, MsgNoEncontrado)
		return
	}
	http.Redirect(rw, r, "listar", http.StatusSeeOther)
}

// ConfirmarEliminar maneja GET /{entidad}/eliminar?id=
func (e *entidad[T]) ConfirmarEliminar(rw http.ResponseWriter, r *http.Request) {
	id, ok := e.id(rw, r)
	if !ok {
		return
	}
	v, err := e.recurso.Obtener(r.Context(), id)
	if err != nil {
		e.fallo(rw, "Error obteniendo registro", err)
		return
	}
	e.confirmacion(rw, http.StatusOK, e.nombre(v), "")
}

// Eliminar maneja POST /{entidad}/eliminar?id=
func (e *entidad[T]) Eliminar(rw http.ResponseWriter, r *http.Request) {
	id, ok := e.id(rw, r)
	if !ok {
		return
	}
	resp, err := e.recurso.Eliminar(r.Context(), id)
	if err != nil {
		if errors.Is(err, api.ErrRechazado) {
			e.w.Logger.Warn("Eliminación rechazada", zap.String("tabla", e.recurso.Tabla()), zap.Int("id", id), zap.Error(err))
			nombre := strconv.Itoa(id)
			if v, err := e.recurso.Obtener(r.Context(), id); err == nil {
				nombre = e.nombre(v)
			}
			e.confirmacion(rw, http.StatusBadRequest, nombre, MsgErrorEliminar)
			return
		}
		e.fallo(rw, "Error eliminando", err)
		return
	}
	if resp.AffectedRows == 0 {
		e.w.renderError(rw, http.StatusNotFound, MsgNoEncontrado)
		return
	}
	http.Redirect(rw, r, "listar", http.StatusSeeOther)
}

func (e *entidad[T]) formulario(rw http.ResponseWriter, r *http.Request, estado int, titulo, boton string, v T, alerta string) {
	campos, err := e.campos(r.Context(), v)
	if err != nil {
		e.fallo(rw, "Error cargando listas desplegables", err)
		return
	}
	e.w.render(rw, estado, "formulario", vistas.Formulario{
		Pagina: vistas.Pagina{Titulo: titulo, Alerta: alerta},
		Campos: campos,
		Boton:  boton,
	})
}

func (e *entidad[T]) confirmacion(rw http.ResponseWriter, estado int, nombre, alerta string) {
	e.w.render(rw, estado, "eliminar", vistas.Confirmacion{
		Pagina:   vistas.Pagina{Titulo: "Eliminar " + e.singular, Alerta: alerta},
		Pregunta: e.pregunta,
		Nombre:   nombre,
	})
}

func (e *entidad[T]) leerFormulario(rw http.ResponseWriter, r *http.Request, titulo, boton string) (T, bool) {
	var cero T
	if err := r.ParseForm(); err != nil {
		e.w.renderError(rw, http.StatusBadRequest, MsgDatosInvalidos)
		return cero, false
	}
	v, err := e.leer(r.PostForm)
	if err != nil {
		e.w.Logger.Info("Formulario inválido", zap.String("tabla", e.recurso.Tabla()), zap.Error(err))
		e.formulario(rw, r, http.StatusBadRequest, titulo, boton, v, MsgDatosInvalidos)
		return cero, false
	}
	return v, true
}

func (e *entidad[T]) id(rw http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		e.w.renderError(rw, http.StatusBadRequest, MsgIDInvalido)
		return 0, false
	}
	return id, true
}

// fallo traduce errores del API que no son 400: 404 si el registro no existe,
// 502 en cualquier otro caso.
func (e *entidad[T]) fallo(rw http.ResponseWriter, mensaje string, err error) {
	if errors.Is(err, api.ErrNoEncontrado) {
		e.w.renderError(rw, http.StatusNotFound, MsgNoEncontrado)
		return
	}
	e.w.Logger.Error(mensaje, zap.String("tabla", e.recurso.Tabla()), zap.Error(err))
	e.w.renderError(rw, http.StatusBadGateway, MsgSinConexion)
}

// enteroFormulario lee un id numérico de un campo del formulario.
func enteroFormulario(f url.Values, campo string) (int, error) {
	n, err := strconv.Atoi(f.Get(campo))
	if err != nil {
		return 0, errors.New(campo + " no es numérico")
	}
	return n, nil
}
