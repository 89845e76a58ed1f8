package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/voxedit/internal/importer"
	"github.com/piwi3910/voxedit/internal/model"
	"github.com/piwi3910/voxedit/internal/project"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:     "config",
		Short:   "Show and manage editor settings",
		GroupID: "settings",
	}
	configCmd.AddCommand(
		newConfigShowCmd(a),
		newConfigInitCmd(a),
		newConfigExportCmd(a),
		newConfigImportCmd(a),
	)
	return configCmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), a.cfg)
			}
			out := cmd.OutOrStdout()
			printLabelValue(out, "Config file", a.configPath)
			printLabelValue(out, "Log level", a.cfg.LogLevel)
			printLabelValue(out, "History depth", strconv.Itoa(a.cfg.HistoryDepth))
			printLabelValue(out, "Vertical threshold", strconv.FormatFloat(a.cfg.VerticalThreshold, 'f', -1, 64))
			printLabelValue(out, "Catalog file", valueOr(a.cfg.CatalogPath, "(built-in only)"))
			printLabelValue(out, "Export dir", a.cfg.ExportDir)
			return nil
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := project.SaveEditorConfig(a.configPath, model.DefaultEditorConfig()); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s", a.configPath))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Bundle the config and custom catalog entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := project.ExportBundle(args[0], a.cfg, a.custom); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Exported config and %d custom parts to %s", len(a.custom), args[0]))
			return nil
		},
	}
}

func newConfigImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Install a bundle as the current config",
		Long: `Replaces the config file with the bundle's settings. Custom catalog
entries in the bundle are written to catalog.csv next to the config file,
and the config is pointed at it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := project.ImportBundle(args[0])
			if err != nil {
				return err
			}

			cfg := bundle.Config
			if len(bundle.Parts) > 0 {
				csvPath := filepath.Join(filepath.Dir(a.configPath), "catalog.csv")
				if err := writeCatalogCSV(csvPath, bundle.Parts); err != nil {
					return err
				}
				cfg.CatalogPath = csvPath
			}
			if err := project.SaveEditorConfig(a.configPath, cfg); err != nil {
				return err
			}
			a.log.Info().Str("bundle", args[0]).Int("parts", len(bundle.Parts)).Msg("Imported bundle")
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Imported %s (created %s, %d custom parts)", args[0], bundle.CreatedAt, len(bundle.Parts)))
			return nil
		},
	}
}

func writeCatalogCSV(path string, entries []model.CatalogEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := importer.WriteCSV(f, entries); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
