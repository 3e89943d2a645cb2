package consultas

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestListarGestiones(t *testing.T) {
	espera := "select ges.id_gestion as id_gestion, cli.id_cliente as id_cliente, " +
		"ges.comentarios as comentarios, " +
		"CONCAT(cli.nombres, ' ', cli.apellidos) as nombre_cliente, " +
		"CONCAT(usu.nombres, ' ', usu.apellidos) as nombre_usuario, " +
		"tge.nombre_tipo_gestion as nombre_tipo_gestion, " +
		"res.nombre_resultado as nombre_resultado, " +
		"ges.fecha_registro as fecha_registro " +
		"from gestion ges, usuario usu, cliente cli, tipo_gestion tge, resultado res " +
		"where ges.id_usuario = usu.id_usuario and ges.id_cliente = cli.id_cliente " +
		"and ges.id_tipo_gestion = tge.id_tipo_gestion and ges.id_resultado = res.id_resultado " +
		"order by ges.id_gestion"

	if diff := cmp.Diff(espera, ListarGestiones()); diff != "" {
		t.Errorf("consulta distinta (-espera +obtenida):\n%s", diff)
	}
}

func TestConsultaSinCondiciones(t *testing.T) {
	q := Select("id_resultado", "nombre_resultado").From("resultado", "").String()
	assert.Equal(t, "select id_resultado, nombre_resultado from resultado", q)
}

func TestSelectNoComparteColumnas(t *testing.T) {
	cols := []string{"a", "b"}
	c := Select(cols...)
	cols[0] = "x"
	assert.Equal(t, "select a, b from t", c.From("t", "").String())
}
