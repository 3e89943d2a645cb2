package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crm/config"
	"crm/db"
	"crm/handlers"
)

var migrar bool

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Sirve el proxy REST/SQL en /api/{tabla} y /dynamic",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		almacen, err := abrirAlmacen(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer almacen.Close()

		if migrar {
			if err := almacen.Migrar(ctx); err != nil {
				return fmt.Errorf("migrando esquema: %w", err)
			}
			logger.Info("Esquema aplicado", zap.String("motor", cfg.DB.Motor))
		}

		a := &handlers.API{
			Almacen:     almacen,
			Logger:      logger,
			SizeDefecto: cfg.API.SizeDefecto,
			SizeMaximo:  cfg.API.SizeMaximo,
		}
		logger.Info("Servidor API corriendo", zap.String("addr", cfg.API.Addr), zap.String("motor", cfg.DB.Motor))
		return servir(ctx, cfg.API.Addr, handlers.NuevoRouter(a, handlers.NuevasMetricas()))
	},
}

func init() {
	apiCmd.Flags().BoolVar(&migrar, "migrar", false, "Crear las tablas antes de servir")
}

func abrirAlmacen(ctx context.Context, dc config.DBConfig) (db.Almacen, error) {
	switch dc.Motor {
	case config.MotorPostgres:
		return db.ConectarPostgres(ctx, dc.URL, logger)
	case config.MotorSQLite:
		return db.AbrirSQLite(dc.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("motor desconocido %q", dc.Motor)
	}
}
