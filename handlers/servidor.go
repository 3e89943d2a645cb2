// handlers/servidor.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NuevoRouter arma el router completo del proxy: rutas del API, /metrics y middlewares.
func NuevoRouter(a *API, m *Metricas) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("API funcionando correctamente\n"))
	}).Methods("GET")
	r.Handle("/metrics", m.Handler()).Methods("GET")

	api := r.NewRoute().Subrouter()
	api.Use(m.Middleware)
	a.Registrar(api)

	return HabilitarCORS(RegistrarSolicitudes(a.Logger)(r))
}
