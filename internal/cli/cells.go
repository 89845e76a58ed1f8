package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/voxedit/internal/editor"
	"github.com/piwi3910/voxedit/internal/engine"
	"github.com/piwi3910/voxedit/internal/export"
	"github.com/piwi3910/voxedit/internal/model"
)

func newCellsCmd(a *app) *cobra.Command {
	var (
		at         string
		rot        string
		sheetPath  string
		labelsPath string
	)

	cmd := &cobra.Command{
		Use:   "cells <id>",
		Short: "Print the grid cells a placed part occupies",
		Long: `Places one part of the given type and prints every cell it covers, in
footprint order. Rotation is given in degrees about X, Y and Z (X applied
first).`,
		Example: `  voxedit cells 2 --at 10,4,10
  voxedit cells 12 --at 5,5,5 --rot 0,90,0 --sheet corner.pdf`,
		GroupID: "assembly",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePartID(args[0])
			if err != nil {
				return err
			}
			pos, err := parseCell(at)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			deg, err := parseTriple(rot)
			if err != nil {
				return fmt.Errorf("--rot: %w", err)
			}
			if _, ok := a.cat.Entry(id); !ok {
				printWarning(cmd.ErrOrStderr(), fmt.Sprintf("Unknown part id %d, using a single cell", id))
			}

			p := model.NewPlacedPart(id, pos, model.EulerFromDegrees(deg[0], deg[1], deg[2]))
			cells := engine.Cells(p, a.cat)

			if a.jsonOutput {
				if err := outputJSON(cmd.OutOrStdout(), cells); err != nil {
					return err
				}
			} else {
				for _, c := range cells {
					fmt.Fprintf(cmd.OutOrStdout(), "%d %d %d\n", c.X, c.Y, c.Z)
				}
			}

			if sheetPath == "" && labelsPath == "" {
				return nil
			}
			sess := editor.NewSession(a.cfg, a.cat, []*model.PlacedPart{p}, a.log)
			if sheetPath != "" {
				if err := export.ExportBuildSheet(sheetPath, sess); err != nil {
					return fmt.Errorf("build sheet: %w", err)
				}
				a.log.Info().Str("file", sheetPath).Msg("Wrote build sheet")
			}
			if labelsPath != "" {
				if err := export.ExportLabels(labelsPath, sess, model.ScopeAll); err != nil {
					return fmt.Errorf("labels: %w", err)
				}
				a.log.Info().Str("file", labelsPath).Msg("Wrote labels")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "0,0,0", "Part position x,y,z")
	cmd.Flags().StringVar(&rot, "rot", "0,0,0", "Rotation in degrees x,y,z")
	cmd.Flags().StringVar(&sheetPath, "sheet", "", "Also write a PDF build sheet")
	cmd.Flags().StringVar(&labelsPath, "labels", "", "Also write a PDF part label")
	return cmd
}

// parseTriple parses "a,b,c" into three floats.
func parseTriple(s string) ([3]float64, error) {
	var out [3]float64
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return out, fmt.Errorf("expected x,y,z, got %q", s)
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return out, fmt.Errorf("invalid number %q", f)
		}
		out[i] = v
	}
	return out, nil
}

// parseCell parses "x,y,z" into an in-bounds cell.
func parseCell(s string) (model.Cell, error) {
	var c model.Cell
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return c, fmt.Errorf("expected x,y,z, got %q", s)
	}
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return c, fmt.Errorf("invalid coordinate %q", f)
		}
		c.SetAxis(i, v)
	}
	if !c.InBounds() {
		return c, fmt.Errorf("%s is outside the %d cell grid", s, model.GridSize)
	}
	return c, nil
}
