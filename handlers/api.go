// handlers/api.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"crm/db"
)

// API expone las tablas de db.Tablas al estilo de un proxy REST/SQL:
// /api/{tabla}, /api/{tabla}/{id} y /dynamic.
type API struct {
	Almacen     db.Almacen
	Logger      *zap.Logger
	SizeDefecto int
	SizeMaximo  int
}

// Registrar monta las rutas del proxy en r.
func (a *API) Registrar(r *mux.Router) {
	r.HandleFunc("/api/{tabla}", a.Listar).Methods("GET")
	r.HandleFunc("/api/{tabla}", a.Crear).Methods("POST")
	r.HandleFunc("/api/{tabla}/{id}", a.Obtener).Methods("GET")
	r.HandleFunc("/api/{tabla}/{id}", a.Actualizar).Methods("PATCH")
	r.HandleFunc("/api/{tabla}/{id}", a.Eliminar).Methods("DELETE")
	r.HandleFunc("/dynamic", a.Dinamica).Methods("POST")
}

// Listar maneja GET /api/{tabla}?_size=&_p=
func (a *API) Listar(w http.ResponseWriter, r *http.Request) {
	t, ok := a.tabla(w, r)
	if !ok {
		return
	}
	size := a.SizeDefecto
	if v := r.URL.Query().Get("_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			responderError(w, http.StatusBadRequest, "_size inválido")
			return
		}
		size = n
	}
	if a.SizeMaximo > 0 && size > a.SizeMaximo {
		size = a.SizeMaximo
	}
	pagina := 0
	if v := r.URL.Query().Get("_p"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			responderError(w, http.StatusBadRequest, "_p inválido")
			return
		}
		pagina = n
	}

	filas, err := a.Almacen.Listar(r.Context(), t, size, pagina*size)
	if err != nil {
		a.Logger.Error("Error listando tabla", zap.String("tabla", t.Nombre), zap.Error(err))
		responderError(w, http.StatusInternalServerError, "Error al consultar "+t.Nombre)
		return
	}
	responderJSON(w, http.StatusOK, filas)
}

// Obtener maneja GET /api/{tabla}/{id}. Responde un arreglo de 0 o 1 filas.
func (a *API) Obtener(w http.ResponseWriter, r *http.Request) {
	t, ok := a.tabla(w, r)
	if !ok {
		return
	}
	id, ok := leerID(w, r)
	if !ok {
		return
	}
	filas, err := a.Almacen.Obtener(r.Context(), t, id)
	if err != nil {
		a.Logger.Error("Error obteniendo registro", zap.String("tabla", t.Nombre), zap.Int64("id", id), zap.Error(err))
		responderError(w, http.StatusInternalServerError, "Error al consultar "+t.Nombre)
		return
	}
	responderJSON(w, http.StatusOK, filas)
}

// Crear maneja POST /api/{tabla}
func (a *API) Crear(w http.ResponseWriter, r *http.Request) {
	t, ok := a.tabla(w, r)
	if !ok {
		return
	}
	valores, ok := leerValores(w, r)
	if !ok {
		return
	}
	id, err := a.Almacen.Insertar(r.Context(), t, valores)
	if err != nil {
		a.rechazar(w, r, "INSERT", t, err)
		return
	}
	a.Logger.Info("Registro creado", zap.String("tabla", t.Nombre), zap.Int64("id", id))
	responderJSON(w, http.StatusOK, map[string]int64{"affectedRows": 1, "insertId": id})
}

// Actualizar maneja PATCH /api/{tabla}/{id}
func (a *API) Actualizar(w http.ResponseWriter, r *http.Request) {
	t, ok := a.tabla(w, r)
	if !ok {
		return
	}
	id, ok := leerID(w, r)
	if !ok {
		return
	}
	valores, ok := leerValores(w, r)
	if !ok {
		return
	}
	n, err := a.Almacen.Actualizar(r.Context(), t, id, valores)
	if err != nil {
		a.rechazar(w, r, "UPDATE", t, err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]int64{"affectedRows": n})
}

// Eliminar maneja DELETE /api/{tabla}/{id}
func (a *API) Eliminar(w http.ResponseWriter, r *http.Request) {
	t, ok := a.tabla(w, r)
	if !ok {
		return
	}
	id, ok := leerID(w, r)
	if !ok {
		return
	}
	n, err := a.Almacen.Eliminar(r.Context(), t, id)
	if err != nil {
		a.rechazar(w, r, "DELETE", t, err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]int64{"affectedRows": n})
}

// ConsultaDinamica es el cuerpo de POST /dynamic.
type ConsultaDinamica struct {
	Query  string `json:"query"`
	Params []any  `json:"params"`
}

// Dinamica maneja POST /dynamic: ejecuta la consulta tal cual y devuelve las filas.
func (a *API) Dinamica(w http.ResponseWriter, r *http.Request) {
	var c ConsultaDinamica
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&c); err != nil {
		responderError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if c.Query == "" {
		responderError(w, http.StatusBadRequest, "Falta query")
		return
	}
	for i, p := range c.Params {
		c.Params[i] = normalizar(p)
	}
	filas, err := a.Almacen.Dinamica(r.Context(), c.Query, c.Params)
	if err != nil {
		a.Logger.Warn("Consulta dinámica rechazada", zap.Error(err))
		responderError(w, http.StatusBadRequest, err.Error())
		return
	}
	responderJSON(w, http.StatusOK, filas)
}

func (a *API) tabla(w http.ResponseWriter, r *http.Request) (db.Tabla, bool) {
	nombre := mux.Vars(r)["tabla"]
	t, ok := db.BuscarTabla(nombre)
	if !ok {
		responderError(w, http.StatusNotFound, "Tabla no encontrada: "+nombre)
	}
	return t, ok
}

// rechazar responde 400 ante errores del motor o columnas inválidas.
func (a *API) rechazar(w http.ResponseWriter, r *http.Request, operacion string, t db.Tabla, err error) {
	id, _ := IDSolicitud(r.Context())
	a.Logger.Warn("Escritura rechazada",
		zap.String("id_solicitud", id),
		zap.String("operacion", operacion),
		zap.String("tabla", t.Nombre),
		zap.Error(err),
	)
	var sqlErr *db.ErrorSQL
	if errors.As(err, &sqlErr) || errors.Is(err, db.ErrColumnaDesconocida) || errors.Is(err, db.ErrSinValores) {
		responderError(w, http.StatusBadRequest, err.Error())
		return
	}
	responderError(w, http.StatusInternalServerError, "Error interno")
}

func leerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		responderError(w, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return id, true
}

func leerValores(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var valores map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&valores); err != nil {
		responderError(w, http.StatusBadRequest, "JSON inválido")
		return nil, false
	}
	for k, v := range valores {
		valores[k] = normalizar(v)
	}
	return valores, true
}

// normalizar convierte json.Number a int64 o float64 para los drivers.
func normalizar(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func responderJSON(w http.ResponseWriter, estado int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(estado)
	json.NewEncoder(w).Encode(v)
}

func responderError(w http.ResponseWriter, estado int, mensaje string) {
	responderJSON(w, estado, map[string]string{"error": mensaje})
}
