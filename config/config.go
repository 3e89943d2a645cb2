// Package config carga la configuración del CRM desde crm.yaml y variables de entorno.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Motores de almacenamiento del proxy.
const (
	MotorPostgres = "postgres"
	MotorSQLite   = "sqlite"
)

// Config es la configuración completa.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Web     WebConfig     `yaml:"web"`
	DB      DBConfig      `yaml:"db"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configura el proxy REST/SQL.
type APIConfig struct {
	Addr        string `yaml:"addr"`
	SizeDefecto int    `yaml:"size_defecto"`
	SizeMaximo  int    `yaml:"size_maximo"`
}

// WebConfig configura la interfaz HTML y el cliente del API.
type WebConfig struct {
	Addr   string `yaml:"addr"`
	APIURL string `yaml:"api_url"`
	// Timeout de cada llamada al API, en formato time.ParseDuration.
	Timeout string `yaml:"timeout"`
}

// DBConfig elige el motor y sus parámetros de conexión.
type DBConfig struct {
	Motor      string `yaml:"motor"`
	URL        string `yaml:"url"`
	SQLitePath string `yaml:"sqlite_path"`
}

// LoggingConfig configura zap.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json | console
}

// DefaultConfig devuelve la configuración por defecto.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Addr:        ":3000",
			SizeDefecto: 20,
			SizeMaximo:  1000,
		},
		Web: WebConfig{
			Addr:    ":8080",
			APIURL:  "http://localhost:3000",
			Timeout: "10s",
		},
		DB: DBConfig{
			Motor:      MotorSQLite,
			SQLitePath: "data/crm.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load lee la configuración de path. Si el archivo no existe se usan los
// valores por defecto; las variables de entorno se aplican siempre.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("leyendo configuración: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("interpretando configuración: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save escribe la configuración en YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creando directorio de configuración: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("codificando configuración: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("escribiendo configuración: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("CRM_API_URL"); v != "" {
		c.Web.APIURL = v
	}
	// DATABASE_URL sin motor explícito implica Postgres
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DB.URL = v
		c.DB.Motor = MotorPostgres
	}
	if v := os.Getenv("CRM_MOTOR"); v != "" {
		c.DB.Motor = v
	}
	if v := os.Getenv("CRM_SQLITE_PATH"); v != "" {
		c.DB.SQLitePath = v
	}
	if v := os.Getenv("CRM_API_ADDR"); v != "" {
		c.API.Addr = v
	}
	if v := os.Getenv("CRM_WEB_ADDR"); v != "" {
		c.Web.Addr = v
	}
	if v := os.Getenv("CRM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CRM_SIZE_MAXIMO"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CRM_SIZE_MAXIMO no es numérico: %q", v)
		}
		c.API.SizeMaximo = n
	}
	return nil
}

// Validate revisa combinaciones que impedirían arrancar.
func (c *Config) Validate() error {
	switch c.DB.Motor {
	case MotorPostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("db.url es obligatorio para el motor %q", MotorPostgres)
		}
	case MotorSQLite:
		if c.DB.SQLitePath == "" {
			return fmt.Errorf("db.sqlite_path es obligatorio para el motor %q", MotorSQLite)
		}
	default:
		return fmt.Errorf("motor de base desconocido %q", c.DB.Motor)
	}
	if c.API.SizeDefecto <= 0 || c.API.SizeMaximo < c.API.SizeDefecto {
		return fmt.Errorf("tamaños de página inválidos: size_defecto=%d size_maximo=%d", c.API.SizeDefecto, c.API.SizeMaximo)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("formato de log desconocido %q", c.Logging.Format)
	}
	return nil
}
