// handlers/middleware.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

const CtxIDSolicitudKey ctxKey = "idSolicitud"

// HabilitarCORS permite que el cliente en otro origen llame al proxy.
func HabilitarCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RegistrarSolicitudes asigna un id a cada solicitud (o reutiliza X-Request-ID)
// y deja una línea de log al terminar.
func RegistrarSolicitudes(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)

			rw := &respuestaConEstado{ResponseWriter: w, estado: http.StatusOK}
			inicio := time.Now()
			ctx := context.WithValue(r.Context(), CtxIDSolicitudKey, id)
			next.ServeHTTP(rw, r.WithContext(ctx))

			logger.Info("Solicitud atendida",
				zap.String("id_solicitud", id),
				zap.String("metodo", r.Method),
				zap.String("ruta", r.URL.Path),
				zap.Int("estado", rw.estado),
				zap.Duration("duracion", time.Since(inicio)),
			)
		})
	}
}

// IDSolicitud devuelve el id asignado por RegistrarSolicitudes.
func IDSolicitud(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxIDSolicitudKey).(string)
	return id, ok
}

type respuestaConEstado struct {
	http.ResponseWriter
	estado int
}

func (r *respuestaConEstado) WriteHeader(estado int) {
	r.estado = estado
	r.ResponseWriter.WriteHeader(estado)
}
