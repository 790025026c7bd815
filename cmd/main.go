package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobboard/infrastructure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "jobboard",
		Short: "Job board web application",
		Long: `Job board: companies, jobs posted for them, and a small HTML UI.

Configuration comes from JOBBOARD_* environment variables, optionally
loaded from a .env file.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	app := &appContext{envFile: &envFile}
	serve := serveCommand(app)
	root.AddCommand(serve, migrateCommand(app))
	// Running the binary without a subcommand starts the server.
	root.RunE = serve.RunE
	return root
}

// appContext holds what every subcommand needs. It is filled lazily so
// flags are parsed before config is read.
type appContext struct {
	envFile *string

	cfg    infrastructure.Config
	logger *zap.Logger
	db     *gorm.DB
}

func (a *appContext) open() error {
	cfg, err := infrastructure.LoadConfig(*a.envFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := infrastructure.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	db, err := infrastructure.NewConnection(cfg, logger)
	if err != nil {
		return err
	}
	a.cfg, a.logger, a.db = cfg, logger, db
	return nil
}

func (a *appContext) close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
