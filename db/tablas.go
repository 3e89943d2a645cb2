package db

import (
	"fmt"
	"sort"
)

// Tabla describe una tabla expuesta por el proxy: su clave primaria y las
// columnas que se aceptan en INSERT y UPDATE.
type Tabla struct {
	Nombre   string
	Clave    string
	Columnas []string
}

// Tablas expuestas en /api/{tabla}.
var Tablas = map[string]Tabla{
	"cliente": {
		Nombre:   "cliente",
		Clave:    "id_cliente",
		Columnas: []string{"nombres", "apellidos", "email", "celular", "fecha_registro"},
	},
	"usuario": {
		Nombre:   "usuario",
		Clave:    "id_usuario",
		Columnas: []string{"nombres", "apellidos", "email", "fecha_registro"},
	},
	"resultado": {
		Nombre:   "resultado",
		Clave:    "id_resultado",
		Columnas: []string{"nombre_resultado", "fecha_registro"},
	},
	"tipo_gestion": {
		Nombre:   "tipo_gestion",
		Clave:    "id_tipo_gestion",
		Columnas: []string{"nombre_tipo_gestion", "fecha_registro"},
	},
	"gestion": {
		Nombre:   "gestion",
		Clave:    "id_gestion",
		Columnas: []string{"id_usuario", "id_cliente", "id_tipo_gestion", "id_resultado", "comentarios", "fecha_registro"},
	},
}

// BuscarTabla devuelve la definición de nombre.
func BuscarTabla(nombre string) (Tabla, bool) {
	t, ok := Tablas[nombre]
	return t, ok
}

// Todas las columnas seleccionables, con la clave primero.
func (t Tabla) Seleccion() []string {
	return append([]string{t.Clave}, t.Columnas...)
}

func (t Tabla) tieneColumna(c string) bool {
	for _, col := range t.Columnas {
		if col == c {
			return true
		}
	}
	return false
}

// Filtrar separa los valores en columnas y argumentos ordenados por nombre de
// columna. Rechaza columnas desconocidas y el cuerpo vacío.
func (t Tabla) Filtrar(valores map[string]any) ([]string, []any, error) {
	cols := make([]string, 0, len(valores))
	for c := range valores {
		if c == t.Clave {
			continue
		}
		if !t.tieneColumna(c) {
			return nil, nil, fmt.Errorf("%w: %s.%s", ErrColumnaDesconocida, t.Nombre, c)
		}
		cols = append(cols, c)
	}
	if len(cols) == 0 {
		return nil, nil, ErrSinValores
	}
	sort.Strings(cols)
	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = valores[c]
	}
	return cols, args, nil
}
