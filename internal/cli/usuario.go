package cli

import (
	"fmt"

	"github.com/go-playground/validator"
	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-expedientes/internal/application/dto"
)

var validate = validator.New()

// NewUsuarioCommand administración de usuarios.
func NewUsuarioCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usuario",
		Short: "Usuarios de la aplicación",
	}
	cmd.AddCommand(newCrearUsuarioCommand(opts))
	return cmd
}

func newCrearUsuarioCommand(opts *RootOptions) *cobra.Command {
	var in dto.CreateUsuarioRequest
	cmd := &cobra.Command{
		Use:   "crear",
		Short: "Crea un usuario y lo asigna a sus grupos",
		Args:  cobra.NoArgs,
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

			u, err := c.Auth.CrearUsuario(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (%s)\n", u.Username, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "nombre de usuario")
	cmd.Flags().StringVar(&in.Email, "email", "", "correo")
	cmd.Flags().StringVar(&in.Password, "password", "", "contraseña (mínimo 8 caracteres)")
	cmd.Flags().StringVar(&in.FirstName, "nombre", "", "nombres")
	cmd.Flags().StringVar(&in.LastName, "apellido", "", "apellidos")
	cmd.Flags().BoolVar(&in.IsSuperuser, "superuser", false, "superusuario")
	cmd.Flags().StringSliceVar(&in.Grupos, "grupo", nil, "grupos (se puede repetir)")
	return cmd
}
