package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/piwi3910/voxedit/internal/catalog"
	"github.com/piwi3910/voxedit/internal/importer"
	"github.com/piwi3910/voxedit/internal/logging"
	"github.com/piwi3910/voxedit/internal/model"
	"github.com/piwi3910/voxedit/internal/project"
)

var version = "dev"

// app is the state shared by every command of one invocation.
type app struct {
	// Global flags
	configPath string
	logLevel   string
	jsonOutput bool

	cfg    model.EditorConfig
	cat    *catalog.Catalog
	custom []model.CatalogEntry // entries loaded from cfg.CatalogPath
	log    zerolog.Logger
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// NewRootCmd builds the voxedit command tree. Each call returns fresh flag
// state.
func NewRootCmd() *cobra.Command {
	a := &app{log: logging.Nop()}

	rootCmd := &cobra.Command{
		Use:     "voxedit",
		Version: version,
		Short:   "Voxel part assembly tools",
		Long: `voxedit inspects the part catalog and the cells parts occupy on the
128x128x128 assembly grid, and renders build sheets and part labels.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", project.DefaultConfigPath(), "Editor config file")
	pf.StringVar(&a.logLevel, "log-level", "", "Override the configured log level")
	pf.BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddGroup(
		&cobra.Group{ID: "catalog", Title: "Catalog:"},
		&cobra.Group{ID: "assembly", Title: "Assembly:"},
		&cobra.Group{ID: "settings", Title: "Settings:"},
	)
	rootCmd.AddCommand(
		newCatalogCmd(a),
		newCellsCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// setup loads config, logging and the catalog before any command runs.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := project.LoadEditorConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.log = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

	a.cat = catalog.Default()
	if cfg.CatalogPath == "" {
		return nil
	}
	res := importer.ImportFile(cfg.CatalogPath)
	for _, w := range res.Warnings {
		a.log.Debug().Str("file", cfg.CatalogPath).Msg(w)
	}
	for _, e := range res.Errors {
		a.log.Warn().Str("file", cfg.CatalogPath).Msg(e)
	}
	a.custom = res.Entries
	replaced := a.cat.Merge(res.Entries)
	a.log.Debug().
		Str("file", cfg.CatalogPath).
		Int("entries", len(res.Entries)).
		Int("replaced", replaced).
		Msg("Loaded custom catalog")
	return nil
}

func Execute() error {
	return NewRootCmd().Execute()
}
