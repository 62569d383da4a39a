package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// NewImportCommand carga créditos desde un libro de Excel sin pasar por la API.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	var usuarioID string
	cmd := &cobra.Command{
		Use:   "import <archivo.xlsx>",
		Short: "Carga masiva de créditos (y documentos FHA de la segunda hoja)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.EqualFold(filepath.Ext(args[0]), ".xlsx") {
				return fmt.Errorf("el archivo debe ser .xlsx")
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			c, err := opts.container(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			// Desde la consola la carga corre con privilegios de superusuario.
			out, err := c.Carga.CargarCreditos(ctx, usuarioID, true, f)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&usuarioID, "usuario", "", "ID del usuario al que se atribuye la carga")
	return cmd
}
