package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/catalogo/internal/application/importer"
	"github.com/jhoicas/catalogo/internal/domain"
	"github.com/jhoicas/catalogo/internal/infrastructure/source"
)

func (c *cli) newRunCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "run [archivo]",
		Short: "Importa el archivo de categorías (por defecto IMPORT_FILE)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.cfg.Import.File
			if len(args) == 1 {
				path = args[0]
			}
			records, err := source.ReadFile(path, c.cfg.Import.Encoding)
			if err != nil {
				return err
			}
			opts := importer.Options{DryRun: dryRun || c.cfg.Import.DryRun}

			return c.withImporter(cmd.Context(), func(uc *importer.CategoryImporter) error {
				summary, err := uc.Import(cmd.Context(), c.cfg.Import.CompanyID, records, opts)
				if summary != nil {
					c.printSummary(summary)
				}
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "calcula el plan sin escribir (IMPORT_DRY_RUN)")
	return cmd
}

func (c *cli) printSummary(s *importer.Summary) {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "empresa\t%s\n", s.CompanyID)
	if s.DryRun {
		fmt.Fprintf(tw, "modo\tdry run (sin escrituras)\n")
	}
	fmt.Fprintf(tw, "existentes\t%d\n", s.Existing)
	fmt.Fprintf(tw, "raíces creadas\t%d\n", s.Roots.Count(importer.OutcomeCreated))
	fmt.Fprintf(tw, "hijas creadas\t%d\n", s.Children.Count(importer.OutcomeCreated))
	fmt.Fprintf(tw, "ya existentes\t%d\n",
		s.Roots.Count(importer.OutcomeSkippedDuplicate)+s.Children.Count(importer.OutcomeSkippedDuplicate))
	fmt.Fprintf(tw, "padre no encontrado\t%d\n", s.Children.Count(importer.OutcomeSkippedMissingParent))
	_ = tw.Flush()
	for _, w := range s.Warnings() {
		fmt.Fprintf(c.out, "aviso: %s\n", w)
	}
}

func (c *cli) newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <raíz> [hija]",
		Short: "Busca una categoría por nombre sin distinguir mayúsculas",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			child := ""
			if len(args) == 2 {
				child = args[1]
			}
			return c.withImporter(cmd.Context(), func(uc *importer.CategoryImporter) error {
				cat, err := uc.FindByName(cmd.Context(), c.cfg.Import.CompanyID, args[0], child)
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("categoría no encontrada: %v", args)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%s\t%s\tparent=%s\ttipo=%s\n", cat.ID, cat.Name, cat.ParentID, cat.Type)
				return nil
			})
		},
	}
}

func (c *cli) newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Muestra las raíces con sus hijas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withImporter(cmd.Context(), func(uc *importer.CategoryImporter) error {
				tree, err := uc.Tree(cmd.Context(), c.cfg.Import.CompanyID)
				if err != nil {
					return err
				}
				for _, root := range tree.Roots {
					fmt.Fprintf(c.out, "%s (%s)\n", root.Name, root.ID)
					for _, ch := range root.Children {
						fmt.Fprintf(c.out, "  - %s (%s)\n", ch.Name, ch.ID)
					}
				}
				return nil
			})
		},
	}
}
