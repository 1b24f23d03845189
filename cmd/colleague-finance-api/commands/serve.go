package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/colleague-finance-api/internal/database"
	"github.com/deppfellow/colleague-finance-api/internal/handler"
	"github.com/deppfellow/colleague-finance-api/internal/middleware"
	"github.com/deppfellow/colleague-finance-api/internal/repository"
	"github.com/deppfellow/colleague-finance-api/internal/router"
	"github.com/deppfellow/colleague-finance-api/internal/server"
	"github.com/deppfellow/colleague-finance-api/internal/service"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the job workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if migrate || cfg.IsLocal() {
				if err := database.Migrate(ctx, &log, cfg, -1); err != nil {
					return errors.Wrap(err, "failed to migrate database")
				}
			}

			srv, err := server.New(cfg, &log, loggerService)
			if err != nil {
				return err
			}

			repos := repository.NewRepositories(srv)
			services, err := service.NewService(srv, repos)
			if err != nil {
				return errors.Wrap(err, "could not create services")
			}

			handlers := handler.NewHandlers(srv, services)
			r := router.NewRouter(srv, handlers, middleware.NewMiddlewares(srv))
			srv.SetupHTTPServer(r)

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- srv.Start()
			}()

			select {
			case err := <-serveErr:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return errors.Wrap(err, "server forced to shutdown")
			}
			log.Info().Msg("server exited properly")
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply database migrations before serving")
	return cmd
}
