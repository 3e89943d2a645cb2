// Package consultas arma las consultas SQL que se envían al endpoint /dynamic.
package consultas

import (
	"fmt"
	"strings"
)

// Consulta es un SELECT sobre varias tablas unidas por condiciones en el WHERE.
// No admite parámetros: el texto resultante se envía tal cual.
type Consulta struct {
	columnas    []string
	tablas      []string
	condiciones []string
	orden       []string
}

// Select inicia una consulta con las columnas indicadas.
func Select(columnas ...string) *Consulta {
	return &Consulta{columnas: append([]string(nil), columnas...)}
}

// From agrega una tabla con su alias.
func (c *Consulta) From(tabla, alias string) *Consulta {
	if alias == "" {
		c.tablas = append(c.tablas, tabla)
	} else {
		c.tablas = append(c.tablas, tabla+" "+alias)
	}
	return c
}

// Where agrega una condición; todas se combinan con "and".
func (c *Consulta) Where(condicion string) *Consulta {
	c.condiciones = append(c.condiciones, condicion)
	return c
}

func (c *Consulta) OrderBy(columna string) *Consulta {
	c.orden = append(c.orden, columna)
	return c
}

// String devuelve el texto SQL.
func (c *Consulta) String() string {
	var b strings.Builder
	b.WriteString("select ")
	b.WriteString(strings.Join(c.columnas, ", "))
	b.WriteString(" from ")
	b.WriteString(strings.Join(c.tablas, ", "))
	if len(c.condiciones) > 0 {
		b.WriteString(" where ")
		b.WriteString(strings.Join(c.condiciones, " and "))
	}
	if len(c.orden) > 0 {
		b.WriteString(" order by ")
		b.WriteString(strings.Join(c.orden, ", "))
	}
	return b.String()
}

// Como devuelve "expr as alias".
func Como(expr, alias string) string {
	return fmt.Sprintf("%s as %s", expr, alias)
}

// Igual devuelve la condición de unión "a = b".
func Igual(a, b string) string {
	return a + " = " + b
}

// NombreCompleto concatena nombres y apellidos de la tabla con el alias dado.
func NombreCompleto(alias string) string {
	return fmt.Sprintf("CONCAT(%s.nombres, ' ', %s.apellidos)", alias, alias)
}
