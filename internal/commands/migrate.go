package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"FINTRACK_BACK-END/internal/config"
	"FINTRACK_BACK-END/internal/store"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate <up|down|status|reset|version> [args]",
		Short: "Apply or inspect database migrations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			pool, err := store.Connect(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("database: %w", err)
			}
			defer pool.Close()

			return store.Migrate(cmd.Context(), pool, args[0], args[1:]...)
		},
	}
	return cmd
}
