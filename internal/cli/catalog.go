package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/voxedit/internal/importer"
	"github.com/piwi3910/voxedit/internal/model"
	"github.com/piwi3910/voxedit/internal/project"
)

func newCatalogCmd(a *app) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:     "catalog",
		Short:   "Inspect and import part catalog entries",
		GroupID: "catalog",
	}
	catalogCmd.AddCommand(
		newCatalogListCmd(a),
		newCatalogShowCmd(a),
		newCatalogImportCmd(a),
	)
	return catalogCmd
}

func newCatalogListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every part type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := a.cat.Entries()
			if a.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), entries)
			}

			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{strconv.Itoa(int(e.ID)), e.Name, strconv.Itoa(len(e.Footprint))}
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "CELLS"}, rows)
			return nil
		},
	}
}

func newCatalogShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one part type and its footprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePartID(args[0])
			if err != nil {
				return err
			}
			e, ok := a.cat.Entry(id)
			if !ok {
				return fmt.Errorf("unknown part id %d", id)
			}
			if a.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), e)
			}

			lo, hi := extent(e.Footprint)
			out := cmd.OutOrStdout()
			printLabelValue(out, "ID", strconv.Itoa(int(e.ID)))
			printLabelValue(out, "Name", e.Name)
			printLabelValue(out, "Cells", strconv.Itoa(len(e.Footprint)))
			printLabelValue(out, "Extent", fmt.Sprintf("%d x %d x %d", hi.X-lo.X+1, hi.Y-lo.Y+1, hi.Z-lo.Z+1))
			printLabelValue(out, "Footprint", importer.FormatFootprint(e.Footprint))
			return nil
		},
	}
}

func newCatalogImportCmd(a *app) *cobra.Command {
	var bundlePath string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Validate catalog entries from a CSV or Excel file",
		Long: `Reads catalog entries (columns id, name, footprint) from a CSV or Excel file
and reports what would be loaded. Footprints are written "x y z; x y z".

With --bundle the valid entries are written, together with the current
config, to a bundle that "voxedit config import" installs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := importer.ImportFile(args[0])
			a.log.Debug().Str("file", args[0]).Int("entries", len(res.Entries)).Int("errors", len(res.Errors)).Msg("Imported catalog file")

			if a.jsonOutput {
				if err := outputJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, w := range res.Warnings {
					printWarning(out, w)
				}
				for _, e := range res.Errors {
					printError(out, e)
				}
				for _, e := range res.Entries {
					action := "add"
					if _, exists := a.cat.Entry(e.ID); exists {
						action = "replace"
					}
					printSuccess(out, fmt.Sprintf("%-7s %d %s (%d cells)", action, e.ID, e.Name, len(e.Footprint)))
				}
			}

			if len(res.Entries) == 0 {
				return fmt.Errorf("no valid entries in %s", args[0])
			}
			if bundlePath == "" {
				return nil
			}
			if err := project.ExportBundle(bundlePath, a.cfg, res.Entries); err != nil {
				return err
			}
			if !a.jsonOutput {
				printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote bundle %s", bundlePath))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&bundlePath, "bundle", "", "Write valid entries to this bundle file")
	return cmd
}

func parsePartID(s string) (uint16, error) {
	id, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid part id %q", s)
	}
	return uint16(id), nil
}

// extent returns the bounding box of a set of cells.
func extent(cells []model.Cell) (lo, hi model.Cell) {
	for i, c := range cells {
		if i == 0 {
			lo, hi = c, c
			continue
		}
		for axis := 0; axis < 3; axis++ {
			lo.SetAxis(axis, min(lo.Axis(axis), c.Axis(axis)))
			hi.SetAxis(axis, max(hi.Axis(axis), c.Axis(axis)))
		}
	}
	return lo, hi
}
