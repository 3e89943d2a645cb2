package vistas

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func cargar(t *testing.T) *Vistas {
	t.Helper()
	v, err := Cargar()
	require.NoError(t, err)
	return v
}

func TestRenderFilas(t *testing.T) {
	v := cargar(t)
	var buf bytes.Buffer
	err := v.RenderFilas(&buf, Tabla{
		ID: "tbl_resultado",
		Filas: []Fila{
			{ID: 1, Celdas: []string{"1", "Contactado", "2024-04-17 17:29"}},
			{ID: 2, Celdas: []string{"2", "No contesta", ""}},
		},
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("<tr>")))
	assert.Contains(t, html, "<td>Contactado</td>")
	assert.Contains(t, html, "<a href='actualizar?id=1' class='btn btn-warning btn-sm'>Actualizar</a>")
	assert.Contains(t, html, "<a href='eliminar?id=2' class='btn btn-danger btn-sm'>Eliminar</a>")
}

func TestRenderFilasEscapaHTML(t *testing.T) {
	v := cargar(t)
	var buf bytes.Buffer
	require.NoError(t, v.RenderFilas(&buf, Tabla{Filas: []Fila{{ID: 3, Celdas: []string{"<script>alert(1)</script>"}}}}))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRenderListado(t *testing.T) {
	v := cargar(t)
	var buf bytes.Buffer
	err := v.Render(&buf, "listar", Listado{
		Pagina: Pagina{Titulo: "Tipos de gestión"},
		Tabla:  Tabla{ID: "tbl_tipo_gestion", Encabezados: []string{"ID", "Nombre", "Fecha registro"}},
	})
	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, `<table id="tbl_tipo_gestion"`)
	assert.Contains(t, html, "<th>Fecha registro</th>")
	assert.Contains(t, html, "$('#tbl_tipo_gestion').DataTable();")
	assert.NotContains(t, html, `id="alerta"`)
}

func TestRenderFormularioConListas(t *testing.T) {
	v := cargar(t)
	var buf bytes.Buffer
	err := v.Render(&buf, "formulario", Formulario{
		Pagina: Pagina{Titulo: "Agregar gestión", Alerta: "Se ha producido un error al agregar"},
		Campos: []Campo{
			{Nombre: "id_resultado", Etiqueta: "Resultado", Opciones: []Opcion{{Valor: 4, Texto: "Contactado", Seleccionada: true}}},
			{Nombre: "comentarios", Etiqueta: "Comentarios", Valor: "a & b", Multilinea: true},
			{Nombre: "nombre_resultado", Etiqueta: "Nombre", Valor: "x"},
		},
		Boton: "Agregar",
	})
	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, `id="sel_id_resultado"`)
	assert.Contains(t, html, "<option value='4' selected> Contactado </option>")
	assert.Contains(t, html, `id="txt_comentarios"`)
	assert.Contains(t, html, "a &amp; b")
	assert.Contains(t, html, `id="txt_nombre_resultado"`)
	assert.Contains(t, html, "Se ha producido un error al agregar")
}

func TestRenderConfirmacion(t *testing.T) {
	v := cargar(t)
	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, "eliminar", Confirmacion{
		Pagina:   Pagina{Titulo: "Eliminar resultado"},
		Pregunta: "¿Desea eliminar este resultado?",
		Nombre:   "Contactado",
	}))
	assert.Contains(t, buf.String(), "¿Desea eliminar este resultado? <b>Contactado</b>")
}

func TestPlantillaDesconocida(t *testing.T) {
	v := cargar(t)
	assert.Error(t, v.Render(&bytes.Buffer{}, "nada", nil))
}
