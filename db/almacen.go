// Package db contiene el acceso a datos del proxy REST/SQL: la lista blanca
// de tablas y los motores Postgres (pgx) y SQLite.
package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrColumnaDesconocida = errors.New("columna desconocida")
	ErrSinValores         = errors.New("no se enviaron columnas")
)

// ErrorSQL envuelve un error devuelto por el motor al ejecutar una escritura
// o una consulta dinámica. El proxy lo traduce a 400.
type ErrorSQL struct {
	Codigo string
	Err    error
}

func (e *ErrorSQL) Error() string {
	if e.Codigo == "" {
		return e.Err.Error()
	}
	return e.Codigo + ": " + e.Err.Error()
}

func (e *ErrorSQL) Unwrap() error { return e.Err }

// Almacen es el motor detrás del proxy.
type Almacen interface {
	Listar(ctx context.Context, t Tabla, limite, desplazamiento int) ([]Fila, error)
	Obtener(ctx context.Context, t Tabla, id int64) ([]Fila, error)
	Insertar(ctx context.Context, t Tabla, valores map[string]any) (int64, error)
	Actualizar(ctx context.Context, t Tabla, id int64, valores map[string]any) (int64, error)
	Eliminar(ctx context.Context, t Tabla, id int64) (int64, error)
	Dinamica(ctx context.Context, consulta string, params []any) ([]Fila, error)
	Migrar(ctx context.Context) error
	Close()
}

// Fila conserva el orden de las columnas al serializarse a JSON.
type Fila struct {
	Columnas []string
	Valores  []any
}

// Valor devuelve el valor de la columna c, o nil si no existe.
func (f Fila) Valor(c string) any {
	for i, col := range f.Columnas {
		if col == c {
			return f.Valores[i]
		}
	}
	return nil
}

func (f Fila) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range f.Columnas {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Valores[i])
		if err != nil {
			return nil, fmt.Errorf("columna %s: %w", c, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// dialecto resuelve los marcadores de parámetros de cada motor.
type dialecto func(n int) string

func marcadorPostgres(n int) string { return fmt.Sprintf("$%d", n) }
func marcadorSQLite(int) string { return "?" }

func columnasCitadas(cols []string) string {
	citadas := make([]string, len(cols))
	for i, c := range cols {
		citadas[i] = pq.QuoteIdentifier(c)
	}
	return strings.Join(citadas, ", ")
}

func (d dialecto) listar(t Tabla) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s LIMIT %s OFFSET %s",
		columnasCitadas(t.Seleccion()), pq.QuoteIdentifier(t.Nombre), pq.QuoteIdentifier(t.Clave), d(1), d(2))
}

func (d dialecto) obtener(t Tabla) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s",
		columnasCitadas(t.Seleccion()), pq.QuoteIdentifier(t.Nombre), pq.QuoteIdentifier(t.Clave), d(1))
}

func (d dialecto) insertar(t Tabla, cols []string) string {
	marcas := make([]string, len(cols))
	for i := range cols {
		marcas[i] = d(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		pq.QuoteIdentifier(t.Nombre), columnasCitadas(cols), strings.Join(marcas, ", "), pq.QuoteIdentifier(t.Clave))
}

func (d dialecto) actualizar(t Tabla, cols []string) string {
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = pq.QuoteIdentifier(c) + " = " + d(i+1)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		pq.QuoteIdentifier(t.Nombre), strings.Join(sets, ", "), pq.QuoteIdentifier(t.Clave), d(len(cols)+1))
}

func (d dialecto) eliminar(t Tabla) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		pq.QuoteIdentifier(t.Nombre), pq.QuoteIdentifier(t.Clave), d(1))
}
