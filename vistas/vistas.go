// Package vistas renderiza las páginas HTML del CRM: listados con una fila
// por registro, formularios, confirmaciones de eliminación y avisos.
package vistas

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed plantillas/*.html
var plantillas embed.FS

var paginas = []string{"inicio", "listar", "formulario", "eliminar", "error"}

// Vistas guarda una plantilla compilada por página, cada una con el layout común.
type Vistas struct {
	t map[string]*template.Template
}

// Cargar compila las plantillas embebidas.
func Cargar() (*Vistas, error) {
	v := &Vistas{t: make(map[string]*template.Template, len(paginas))}
	for _, p := range paginas {
		t, err := template.ParseFS(plantillas, "plantillas/layout.html", "plantillas/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("compilando plantilla %s: %w", p, err)
		}
		v.t[p] = t
	}
	return v, nil
}

// Render escribe la página completa nombre con datos.
func (v *Vistas) Render(w io.Writer, nombre string, datos any) error {
	t, ok := v.t[nombre]
	if !ok {
		return fmt.Errorf("plantilla desconocida: %s", nombre)
	}
	return t.ExecuteTemplate(w, "layout", datos)
}

// RenderFilas escribe solo las filas <tr> del cuerpo de la tabla.
func (v *Vistas) RenderFilas(w io.Writer, tabla Tabla) error {
	return v.t["listar"].ExecuteTemplate(w, "filas", tabla)
}

// Pagina lleva los datos comunes al layout.
type Pagina struct {
	Titulo string
	Alerta string
}

type Enlace struct {
	URL   string
	Texto string
}

type Inicio struct {
	Pagina
	Enlaces []Enlace
}

// Tabla es el contenido de un listado. ID es el id del elemento <table>,
// por ejemplo "tbl_resultado".
type Tabla struct {
	ID          string
	Encabezados []string
	Filas       []Fila
}

// Fila es un registro; ID se usa en los enlaces de actualizar y eliminar.
type Fila struct {
	ID     int
	Celdas []string
}

type Listado struct {
	Pagina
	Tabla Tabla
}

type Opcion struct {
	Valor        int
	Texto        string
	Seleccionada bool
}

// Campo es un control del formulario. Con Opciones se dibuja como <select>.
type Campo struct {
	Nombre     string
	Etiqueta   string
	Valor      string
	Opciones   []Opcion
	Multilinea bool
}

// EsLista es verdadero cuando el campo se dibuja como <select>, aunque la
// lista venga vacía.
func (c Campo) EsLista() bool { return c.Opciones != nil }

// ID sigue la convención txt_{campo} para textos y sel_{campo} para listas.
func (c Campo) ID() string {
	if c.EsLista() {
		return "sel_" + c.Nombre
	}
	return "txt_" + c.Nombre
}

type Formulario struct {
	Pagina
	Campos []Campo
	Boton  string
}

// Confirmacion es la página de eliminación: la pregunta seguida del nombre
// del registro en negrita.
type Confirmacion struct {
	Pagina
	Pregunta string
	Nombre   string
}
