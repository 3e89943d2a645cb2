package utils

import (
	"strings"
	"time"
)

const (
	// FormatoVisual es el formato con el que se muestran las fechas en los listados.
	FormatoVisual = "2006-01-02 15:04"
	// FormatoRegistro es el formato de fecha_registro que se envía al crear.
	FormatoRegistro = "2006-01-02 15:04:05"
)

// Formatos aceptados para fecha_registro. Los que no llevan zona se leen en UTC.
var formatosEntrada = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// FormatearFechaHora convierte una marca de tiempo ISO a "YYYY-MM-DD HH:MM" en UTC.
// Si no se puede interpretar devuelve el valor original sin espacios.
func FormatearFechaHora(valor string) string {
	v := strings.TrimSpace(valor)
	if v == "" {
		return ""
	}
	t, ok := ParsearFecha(v)
	if !ok {
		return v
	}
	return t.UTC().Format(FormatoVisual)
}

// ParsearFecha intenta leer valor con cada formato conocido.
func ParsearFecha(valor string) (time.Time, bool) {
	for _, f := range formatosEntrada {
		if t, err := time.ParseInLocation(f, valor, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FechaHoraActual da formato a t como "YYYY-MM-DD HH:MM:SS" en su propia zona.
func FechaHoraActual(t time.Time) string {
	return t.Format(FormatoRegistro)
}
