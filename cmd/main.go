package main

import (
	"fmt"
	"os"

	"clinic-service/internal/repository"
	"clinic-service/internal/repository/memory"
	"clinic-service/pkg/config"
	"clinic-service/pkg/database"
	"clinic-service/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "clinic-service",
		Short:        "Multi-tenant clinic management API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration and initializes the global logger
func bootstrap() (*config.Config, *zap.Logger, error) {
	appConfig, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
		Production:  appConfig.IsProduction(),
	}); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	log := logger.GetLogger()
	log.Info("Configuration loaded", appConfig.LogConfig()...)
	return appConfig, log, nil
}

// openStore connects the configured backend and returns its repositories
func openStore(cfg *config.Config, log *zap.Logger) (*repository.Store, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn("Using in-memory store, data is lost on exit")
		return memory.NewStore(memory.NewDB()), nil
	}

	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := database.MigrateModels(); err != nil {
		return nil, err
	}
	return repository.NewGormStore(db), nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			if cfg.DB.Driver == config.DriverMemory {
				log.Info("Nothing to migrate for the in-memory store")
				return nil
			}
			if _, err := database.InitDB(&cfg.DB); err != nil {
				return err
			}
			defer database.Close()

			if err := database.MigrateModels(); err != nil {
				return err
			}
			log.Info("Database migrations applied")
			return nil
		},
	}
}
