package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crm/api"
	"crm/vistas"
	"crm/web"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Sirve la interfaz HTML contra el API configurado",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c, err := nuevoCliente()
		if err != nil {
			return err
		}
		v, err := vistas.Cargar()
		if err != nil {
			return fmt.Errorf("cargando plantillas: %w", err)
		}
		w := web.New(c, v, logger)

		logger.Info("Interfaz web corriendo", zap.String("addr", cfg.Web.Addr), zap.String("api", c.BaseURL()))
		return servir(ctx, cfg.Web.Addr, w.Router())
	},
}

func nuevoCliente() (*api.Client, error) {
	timeout, err := time.ParseDuration(cfg.Web.Timeout)
	if err != nil {
		return nil, fmt.Errorf("web.timeout: %w", err)
	}
	return api.NewClient(cfg.Web.APIURL,
		api.WithHTTPClient(&http.Client{Timeout: timeout}),
		api.WithLogger(logger),
	), nil
}
