package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"FINTRACK_BACK-END/internal/config"
	"FINTRACK_BACK-END/internal/currency"
	"FINTRACK_BACK-END/internal/logging"
	"FINTRACK_BACK-END/internal/routes"
	"FINTRACK_BACK-END/internal/store"
	"FINTRACK_BACK-END/internal/utils"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, logging.New(cfg.Server.LogLevel))
		},
	}
}

// newMailer picks the delivery backend for the configured email mode.
func newMailer(cfg *config.Config) utils.Mailer {
	if cfg.IsDemoMode() {
		return utils.NewOutboxMailer()
	}
	return utils.NewSMTPMailer(cfg)
}

func runServe(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	pool, err := store.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	st := store.NewPostgres(pool)
	defer st.Close()

	if cfg.Database.AutoMigrate {
		if err := store.Migrate(ctx, pool, "up"); err != nil {
			return err
		}
		log.Info(ctx, "migrations applied")
	}

	rates, err := config.LoadRates(cfg.App.RatesFile)
	if err != nil {
		return err
	}

	h := routes.NewHandlers(cfg, st, newMailer(cfg), currency.NewConverter(rates), log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      routes.SetupRoutes(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "HTTP server listening", "port", cfg.Server.Port, "email_mode", cfg.Email.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info(context.Background(), "server stopped")
	return nil
}
