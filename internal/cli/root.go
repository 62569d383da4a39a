// Package cli comandos de administración de erpctl.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-expedientes/internal/bootstrap"
	"github.com/jhoicas/erp-expedientes/pkg/config"
	"github.com/jhoicas/erp-expedientes/pkg/logger"
)

// RootOptions flags globales y estado compartido entre comandos.
type RootOptions struct {
	Verbose bool

	cfg *config.Config
	log *logger.Logger
}

// NewRootCommand crea el comando raíz de erpctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "erpctl",
		Short:         "Administración del archivo de expedientes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			level := "warn"
			if opts.Verbose {
				level = "debug"
			}
			opts.cfg = cfg
			opts.log = logger.New(logger.Config{Env: "development", Level: level, Out: cmd.ErrOrStderr()})
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "salida detallada")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewEstructuraCommand(opts))
	cmd.AddCommand(NewMailCommand(opts))
	cmd.AddCommand(NewUsuarioCommand(opts))

	return cmd
}

// container abre la base de datos y arma los casos de uso; Redis no se usa desde la CLI.
func (o *RootOptions) container(ctx context.Context) (*bootstrap.Container, error) {
	return bootstrap.New(ctx, o.cfg, o.log, bootstrap.Opciones{})
}
