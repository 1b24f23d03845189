package commands

import (
	"context"
	"time"

	"github.com/deppfellow/colleague-finance-api/internal/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var target int32
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			return database.Migrate(ctx, &log, cfg, target)
		},
	}
	cmd.Flags().Int32Var(&target, "to", -1, "target schema version, latest when negative")
	return cmd
}
