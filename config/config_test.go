package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limpiarEntorno(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CRM_API_URL", "DATABASE_URL", "CRM_MOTOR", "CRM_SQLITE_PATH",
		"CRM_API_ADDR", "CRM_WEB_ADDR", "CRM_LOG_LEVEL", "CRM_SIZE_MAXIMO",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	limpiarEntorno(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "no-existe.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadYAML(t *testing.T) {
	limpiarEntorno(t)
	path := filepath.Join(t.TempDir(), "crm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  addr: ":4000"
  size_maximo: 500
web:
  api_url: "http://proxy:4000"
db:
  motor: postgres
  url: "postgres://crm@localhost/crm"
logging:
  format: console
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.API.Addr)
	assert.Equal(t, 500, cfg.API.SizeMaximo)
	assert.Equal(t, 20, cfg.API.SizeDefecto, "unset keys keep defaults")
	assert.Equal(t, "http://proxy:4000", cfg.Web.APIURL)
	assert.Equal(t, MotorPostgres, cfg.DB.Motor)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadInvalidYAML(t *testing.T) {
	limpiarEntorno(t)
	path := filepath.Join(t.TempDir(), "crm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [no es un mapa"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "interpretando configuración")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("DATABASE_URL selects postgres", func(t *testing.T) {
		limpiarEntorno(t)
		t.Setenv("DATABASE_URL", "postgres://x")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, "postgres://x", cfg.DB.URL)
		assert.Equal(t, MotorPostgres, cfg.DB.Motor)
	})

	t.Run("CRM_MOTOR wins over DATABASE_URL", func(t *testing.T) {
		limpiarEntorno(t)
		t.Setenv("DATABASE_URL", "postgres://x")
		t.Setenv("CRM_MOTOR", MotorSQLite)

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, MotorSQLite, cfg.DB.Motor)
	})

	t.Run("addresses and level", func(t *testing.T) {
		limpiarEntorno(t)
		t.Setenv("CRM_API_URL", "http://api:1")
		t.Setenv("CRM_API_ADDR", ":1")
		t.Setenv("CRM_WEB_ADDR", ":2")
		t.Setenv("CRM_LOG_LEVEL", "debug")
		t.Setenv("CRM_SQLITE_PATH", "/tmp/crm.db")
		t.Setenv("CRM_SIZE_MAXIMO", "50")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, "http://api:1", cfg.Web.APIURL)
		assert.Equal(t, ":1", cfg.API.Addr)
		assert.Equal(t, ":2", cfg.Web.Addr)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "/tmp/crm.db", cfg.DB.SQLitePath)
		assert.Equal(t, 50, cfg.API.SizeMaximo)
	})

	t.Run("non numeric CRM_SIZE_MAXIMO is an error", func(t *testing.T) {
		limpiarEntorno(t)
		t.Setenv("CRM_SIZE_MAXIMO", "mil")

		cfg := DefaultConfig()
		assert.ErrorContains(t, cfg.applyEnvOverrides(), `CRM_SIZE_MAXIMO no es numérico: "mil"`)
		assert.Equal(t, 1000, cfg.API.SizeMaximo)

		_, err := Load(filepath.Join(t.TempDir(), "crm.yaml"))
		assert.ErrorContains(t, err, "CRM_SIZE_MAXIMO")
	})

	t.Run("applied without config file", func(t *testing.T) {
		limpiarEntorno(t)
		t.Setenv("CRM_WEB_ADDR", ":9999")

		cfg, err := Load(filepath.Join(t.TempDir(), "crm.yaml"))
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.Web.Addr)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		msg    string
	}{
		{"postgres without url", func(c *Config) { c.DB.Motor = MotorPostgres }, "db.url"},
		{"sqlite without path", func(c *Config) { c.DB.SQLitePath = "" }, "db.sqlite_path"},
		{"unknown motor", func(c *Config) { c.DB.Motor = "mysql" }, "motor de base desconocido"},
		{"max below default", func(c *Config) { c.API.SizeMaximo = 5 }, "tamaños de página inválidos"},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }, "formato de log desconocido"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.msg)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	limpiarEntorno(t)
	path := filepath.Join(t.TempDir(), "conf", "crm.yaml")
	cfg := DefaultConfig()
	cfg.Web.APIURL = "http://otro:3000"
	require.NoError(t, cfg.Save(path))

	cargada, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, cargada)
}
