package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/erp-expedientes/internal/domain/entity"
	"github.com/jhoicas/erp-expedientes/internal/infrastructure/postgres"
)

// seedFile formato de seeds/grupos.yaml.
type seedFile struct {
	Grupos []struct {
		Nombre   string   `yaml:"nombre"`
		Permisos []string `yaml:"permisos"`
	} `yaml:"grupos"`
}

// NewSeedCommand carga los grupos de usuarios y sus permisos.
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea o actualiza los grupos y permisos definidos en YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			grupos, err := parseGrupos(f)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, opts.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := postgres.NewGrupoRepository(pool)
			for _, g := range grupos {
				if err := repo.Upsert(ctx, g); err != nil {
					return fmt.Errorf("grupo %s: %w", g.Nombre, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d permisos\n", g.Nombre, len(g.Permisos))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seeds/grupos.yaml", "archivo YAML con los grupos")
	return cmd
}

// parseGrupos lee y valida el YAML de grupos; los codenames tienen la forma app.accion_modelo.
func parseGrupos(r io.Reader) ([]*entity.Grupo, error) {
	var s seedFile
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("leer yaml: %w", err)
	}
	out := make([]*entity.Grupo, 0, len(s.Grupos))
	vistos := map[string]bool{}
	for _, g := range s.Grupos {
		nombre := strings.TrimSpace(g.Nombre)
		if nombre == "" {
			return nil, fmt.Errorf("grupo sin nombre")
		}
		if vistos[nombre] {
			return nil, fmt.Errorf("grupo %s repetido", nombre)
		}
		vistos[nombre] = true
		for _, p := range g.Permisos {
			app, accion, ok := strings.Cut(p, ".")
			if !ok || app == "" || !strings.Contains(accion, "_") {
				return nil, fmt.Errorf("grupo %s: permiso %q no tiene la forma app.accion_modelo", nombre, p)
			}
		}
		out = append(out, &entity.Grupo{Nombre: nombre, Permisos: g.Permisos})
	}
	return out, nil
}
