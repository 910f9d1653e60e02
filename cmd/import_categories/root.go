package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/catalogo/internal/application/importer"
	"github.com/jhoicas/catalogo/internal/infrastructure/store"
	"github.com/jhoicas/catalogo/pkg/config"
	"github.com/jhoicas/catalogo/pkg/logger"
)

// flags comunes a todos los subcomandos; vacíos usan la configuración.
type rootFlags struct {
	company  string
	driver   string
	sqlite   string
	encoding string
	logLevel string
}

type cli struct {
	flags  rootFlags
	out    io.Writer
	errOut io.Writer
	cfg    *config.Config
	log    *logger.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "import_categories",
		Short:         "Importa categorías de dos niveles sin duplicados",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&c.flags.company, "company", "c", "", "empresa destino (IMPORT_COMPANY_ID)")
	pf.StringVar(&c.flags.driver, "store", "", "almacenamiento: postgres, sqlite, memory (STORE_DRIVER)")
	pf.StringVar(&c.flags.sqlite, "sqlite-path", "", "archivo SQLite (SQLITE_PATH)")
	pf.StringVar(&c.flags.encoding, "encoding", "", "charset del archivo: utf-8, iso-8859-1, windows-1252 (IMPORT_ENCODING)")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "nivel de log (LOG_LEVEL)")

	root.AddCommand(c.newRunCmd(), c.newFindCmd(), c.newTreeCmd())
	return root
}

// setup carga la configuración y aplica los flags encima.
func (c *cli) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if c.flags.company != "" {
		cfg.Import.CompanyID = c.flags.company
	}
	if c.flags.driver != "" {
		cfg.Store.Driver = c.flags.driver
	}
	if c.flags.sqlite != "" {
		cfg.Store.SQLitePath = c.flags.sqlite
	}
	if c.flags.encoding != "" {
		cfg.Import.Encoding = c.flags.encoding
	}
	if c.flags.logLevel != "" {
		cfg.App.LogLevel = c.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Import.CompanyID == "" {
		return fmt.Errorf("empresa destino requerida: --company o IMPORT_COMPANY_ID")
	}
	c.cfg = cfg
	c.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: c.errOut})
	return nil
}

// withImporter abre el almacenamiento y ejecuta fn con el caso de uso.
func (c *cli) withImporter(ctx context.Context, fn func(uc *importer.CategoryImporter) error) error {
	s, closeFn, err := store.Open(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(importer.NewCategoryImporter(s, nil, c.log))
}
