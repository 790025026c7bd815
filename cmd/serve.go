package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobboard/infrastructure"
	"jobboard/interfaces"
)

func serveCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			defer app.close()
			return serve(cmd.Context(), app)
		},
	}
}

func serve(ctx context.Context, app *appContext) error {
	cfg, logger, db := app.cfg, app.logger, app.db

	if cfg.DBAutoMigrate {
		if _, err := infrastructure.NewMigrator(db, infrastructure.Migrations, logger).Up(ctx); err != nil {
			return err
		}
	}
	if cfg.DBSeed {
		if err := infrastructure.SeedCompanies(ctx, db, logger); err != nil {
			return err
		}
	}

	var metrics *infrastructure.Metrics
	if cfg.MetricsEnabled {
		m, err := infrastructure.NewMetrics(db)
		if err != nil {
			return err
		}
		metrics = m
	}

	gin.SetMode(cfg.GinMode)
	router, err := interfaces.NewRouter(interfaces.RouterOptions{DB: db, Logger: logger, Metrics: metrics})
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
