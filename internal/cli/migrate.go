package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-expedientes/internal/infrastructure/postgres"
)

// NewMigrateCommand aplica las migraciones pendientes.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, opts.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := postgres.Migrate(ctx, pool)
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "aplicada %s\n", name)
			}
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "sin migraciones pendientes")
			}
			return nil
		},
	}
}
