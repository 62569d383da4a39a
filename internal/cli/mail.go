package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMailCommand operaciones sobre el outbox de correos.
func NewMailCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Outbox de correos",
	}
	cmd.AddCommand(newDispatchCommand(opts))
	return cmd
}

func newDispatchCommand(opts *RootOptions) *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Envía los correos pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := opts.container(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			if !once {
				c.Dispatcher.Run(ctx)
				return nil
			}
			res, err := c.Dispatcher.DispatchOnce(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "enviados: %d\nfallidos: %d\n", res.Enviados, res.Fallidos)
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "procesa un solo lote y termina")
	return cmd
}
