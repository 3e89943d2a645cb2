// handlers/metricas.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metricas cuenta solicitudes y mide su latencia por ruta.
type Metricas struct {
	registro    *prometheus.Registry
	solicitudes *prometheus.CounterVec
	duracion    *prometheus.HistogramVec
}

func NuevasMetricas() *Metricas {
	m := &Metricas{
		registro: prometheus.NewRegistry(),
		solicitudes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: "api",
			Name:      "solicitudes_total",
			Help:      "Solicitudes atendidas por ruta, método y estado.",
		}, []string{"ruta", "metodo", "estado"}),
		duracion: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crm",
			Subsystem: "api",
			Name:      "duracion_segundos",
			Help:      "Latencia de las solicitudes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"ruta", "metodo"}),
	}
	m.registro.MustRegister(m.solicitudes, m.duracion)
	return m
}

// Middleware se monta con router.Use para que mux.CurrentRoute esté disponible.
func (m *Metricas) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ruta := "desconocida"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				ruta = tpl
			}
		}
		rw := &respuestaConEstado{ResponseWriter: w, estado: http.StatusOK}
		inicio := time.Now()
		next.ServeHTTP(rw, r)
		m.solicitudes.WithLabelValues(ruta, r.Method, strconv.Itoa(rw.estado)).Inc()
		m.duracion.WithLabelValues(ruta, r.Method).Observe(time.Since(inicio).Seconds())
	})
}

// Handler expone las métricas en formato Prometheus.
func (m *Metricas) Handler() http.Handler {
	return promhttp.HandlerFor(m.registro, promhttp.HandlerOpts{})
}
