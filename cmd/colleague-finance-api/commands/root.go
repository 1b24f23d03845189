// Package commands is the colleague-finance-api command line.
package commands

import (
	"github.com/deppfellow/colleague-finance-api/internal/config"
	"github.com/deppfellow/colleague-finance-api/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath string

	cfg           *config.Config
	loggerService *logger.LoggerService
	log           zerolog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "colleague-finance-api",
		Short:         "Colleague Finance web API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			loggerService = logger.NewLoggerService(cfg.Observability)
			log = logger.NewLoggerWithService(cfg.Observability, loggerService)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if loggerService != nil {
				loggerService.Shutdown()
			}
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "optional YAML config file, overridden by COLLEAGUE_ env vars")

	root.AddCommand(serveCmd(), migrateCmd())

	err := root.Execute()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
	}
	return err
}
