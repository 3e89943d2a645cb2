package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatearFechaHora(t *testing.T) {
	casos := []struct {
		nombre  string
		entrada string
		espera  string
	}{
		{"rfc3339 utc", "2024-06-04T17:29:00Z", "2024-06-04 17:29"},
		{"milisegundos", "2024-06-04T17:29:45.123Z", "2024-06-04 17:29"},
		{"con zona", "2024-06-04T12:29:00-05:00", "2024-06-04 17:29"},
		{"sin zona con espacio", "2024-06-04 17:29:00", "2024-06-04 17:29"},
		{"sin zona con T", "2024-06-04T08:05:09", "2024-06-04 08:05"},
		{"sin segundos", "2024-06-04 17:29", "2024-06-04 17:29"},
		{"solo fecha", "2024-06-04", "2024-06-04 00:00"},
		{"cruza medianoche", "2024-12-31T22:30:00-03:00", "2025-01-01 01:30"},
		{"espacios", "  2024-06-04 17:29:00 ", "2024-06-04 17:29"},
		{"vacio", "", ""},
		{"invalido", "no es fecha", "no es fecha"},
		{"formato europeo", "04/06/2024", "04/06/2024"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.espera, FormatearFechaHora(c.entrada))
		})
	}
}

func TestFechaHoraActual(t *testing.T) {
	lima := time.FixedZone("PET", -5*3600)
	momento := time.Date(2024, time.April, 7, 9, 3, 2, 500, lima)
	assert.Equal(t, "2024-04-07 09:03:02", FechaHoraActual(momento))
}

func TestParsearFecha(t *testing.T) {
	fecha, ok := ParsearFecha("2024-06-04 17:29:00")
	assert.True(t, ok)
	assert.Equal(t, time.UTC, fecha.Location())

	_, ok = ParsearFecha("ayer")
	assert.False(t, ok)
}
