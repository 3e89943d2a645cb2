// crm sirve el proxy REST/SQL y la interfaz web de gestiones, y lista
// registros desde la terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"crm/config"
)

var (
	cfgPath string
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "crm",
	Short:         "CRM de gestiones: proxy REST/SQL, interfaz web y consultas",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		logger, err = nuevoLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "crm.yaml", "Archivo de configuración")

	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(listarCmd)
	rootCmd.AddCommand(gestionesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func nuevoLogger(lc config.LoggingConfig) (*zap.Logger, error) {
	nivel, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if lc.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(nivel)
	return zc.Build()
}

// servir atiende h en addr hasta que ctx termina y luego cierra con un plazo de 5s.
func servir(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Deteniendo servidor", zap.String("addr", addr))
	apagado, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(apagado); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
