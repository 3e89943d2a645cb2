package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm/api"
	"crm/config"
	"crm/db"
	"crm/handlers"
	"crm/models"
)

func TestNuevoLogger(t *testing.T) {
	l, err := nuevoLogger(config.LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = nuevoLogger(config.LoggingConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))

	_, err = nuevoLogger(config.LoggingConfig{Level: "ruidoso", Format: "json"})
	assert.Error(t, err)
}

func TestCeldasRegistros(t *testing.T) {
	registros := []map[string]json.RawMessage{{
		"id_cliente":     json.RawMessage(`7`),
		"nombres":        json.RawMessage(`"Ana"`),
		"email":          json.RawMessage(`null`),
		"fecha_registro": json.RawMessage(`"2024-06-04T17:29:45.000Z"`),
	}}
	got := celdasRegistros([]string{"id_cliente", "nombres", "email", "celular", "fecha_registro"}, registros)
	assert.Equal(t, [][]string{{"7", "Ana", "", "", "2024-06-04 17:29"}}, got)
}

func TestImprimirTablaVacia(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, imprimirTabla(&out, []string{"ID"}, nil))
	assert.Equal(t, "Sin registros\n", out.String())
}

func TestEntidadesOrdenadas(t *testing.T) {
	assert.Equal(t, []string{"cliente", "gestion", "resultado", "tipo_gestion", "usuario"}, entidades())
}

// ejecutar corre la CLI contra un proxy sobre SQLite en memoria.
func ejecutar(t *testing.T, sembrar func(c *api.Client), args ...string) (string, error) {
	t.Helper()
	almacen, err := db.AbrirSQLite(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(almacen.Close)
	require.NoError(t, almacen.Migrar(context.Background()))
	a := &handlers.API{Almacen: almacen, Logger: zap.NewNop(), SizeDefecto: 20, SizeMaximo: 1000}
	srv := httptest.NewServer(handlers.NuevoRouter(a, handlers.NuevasMetricas()))
	t.Cleanup(srv.Close)
	sembrar(api.NewClient(srv.URL))

	for _, k := range []string{"DATABASE_URL", "CRM_MOTOR", "CRM_SQLITE_PATH", "CRM_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	t.Setenv("CRM_API_URL", srv.URL)
	t.Setenv("CRM_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "crm.yaml")}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err = rootCmd.Execute()
	return out.String(), err
}

func TestListarResultado(t *testing.T) {
	out, err := ejecutar(t, func(c *api.Client) {
		_, err := api.Resultados(c).Crear(context.Background(), models.Resultado{
			NombreResultado: "Contactado", FechaRegistro: "2024-06-04 17:29:00",
		})
		require.NoError(t, err)
	}, "listar", "resultado")

	require.NoError(t, err)
	assert.Contains(t, out, "id_resultado")
	assert.Contains(t, out, "nombre_resultado")
	assert.Contains(t, out, "Contactado")
	assert.Contains(t, out, "2024-06-04 17:29")
}

func TestListarEntidadDesconocida(t *testing.T) {
	_, err := ejecutar(t, func(*api.Client) {}, "listar", "factura")
	assert.ErrorContains(t, err, `entidad desconocida "factura"`)
}

func TestGestiones(t *testing.T) {
	out, err := ejecutar(t, func(c *api.Client) {
		ctx := context.Background()
		_, err := api.Clientes(c).Crear(ctx, models.Cliente{Nombres: "Ana", Apellidos: "Soto"})
		require.NoError(t, err)
		_, err = api.Usuarios(c).Crear(ctx, models.Usuario{Nombres: "Luis", Apellidos: "Rojas"})
		require.NoError(t, err)
		_, err = api.TiposGestion(c).Crear(ctx, models.TipoGestion{NombreTipoGestion: "Llamada"})
		require.NoError(t, err)
		_, err = api.Resultados(c).Crear(ctx, models.Resultado{NombreResultado: "Contactado"})
		require.NoError(t, err)
		_, err = api.Gestiones(c).Crear(ctx, models.Gestion{
			IDUsuario: 1, IDCliente: 1, IDTipoGestion: 1, IDResultado: 1, Comentarios: "Volver a llamar",
		})
		require.NoError(t, err)
	}, "gestiones")

	require.NoError(t, err)
	assert.Contains(t, out, "Ana Soto")
	assert.Contains(t, out, "Luis Rojas")
	assert.Contains(t, out, "Volver a llamar")
}

func TestAbrirAlmacen(t *testing.T) {
	logger = zap.NewNop()
	ctx := context.Background()

	a, err := abrirAlmacen(ctx, config.DBConfig{Motor: config.MotorSQLite, SQLitePath: filepath.Join(t.TempDir(), "datos", "crm.db")})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	require.NoError(t, a.Migrar(ctx))
	filas, err := a.Listar(ctx, db.Tablas["cliente"], 10, 0)
	require.NoError(t, err)
	assert.Empty(t, filas)

	_, err = abrirAlmacen(ctx, config.DBConfig{Motor: "oracle"})
	assert.ErrorContains(t, err, `motor desconocido "oracle"`)
}
