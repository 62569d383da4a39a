package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
)

// NewEstructuraCommand agrupa las operaciones sobre la estructura de bodegas.
func NewEstructuraCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estructura",
		Short: "Estructura física de las bodegas",
	}
	cmd.AddCommand(newGenerarCommand(opts))
	return cmd
}

func newGenerarCommand(opts *RootOptions) *cobra.Command {
	var in dto.GenerarEstructuraRequest
	cmd := &cobra.Command{
		Use:   "generar <bodega-id>",
		Short: "Genera estantes, niveles, posiciones y cajas de una bodega",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.Struct(in); err != nil {
				return err
			}
			ctx := cmd.Context()
			c, err := opts.container(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			out, err := c.Estructura.Generar(ctx, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "estantes: %d\nniveles: %d\nposiciones: %d\ncajas: %d\n",
				out.Estantes, out.Niveles, out.Posiciones, out.Cajas)
			return nil
		},
	}
	cmd.Flags().IntVar(&in.Estantes, "estantes", 0, "cantidad de estantes (A..ZZ)")
	cmd.Flags().IntVar(&in.Niveles, "niveles", 0, "niveles por estante")
	cmd.Flags().IntVar(&in.Posiciones, "posiciones", 0, "posiciones por nivel")
	cmd.Flags().IntVar(&in.Cajas, "cajas", 0, "cajas por posición")
	return cmd
}
