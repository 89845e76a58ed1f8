package export

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/voxedit/internal/catalog"
	"github.com/piwi3910/voxedit/internal/editor"
	"github.com/piwi3910/voxedit/internal/model"
)

// testAssembly builds a small vehicle with one selected part: a 4x4 plate
// at y=2, a double-height part standing on it and a selected block off to
// the side.
func testAssembly(t *testing.T) (*editor.Session, []*model.PlacedPart) {
	t.Helper()
	parts := []*model.PlacedPart{
		model.NewPlacedPart(catalog.PartPlate4x4, model.Cell{X: 10, Y: 2, Z: 10}, model.Euler{}),
		model.NewPlacedPart(catalog.PartDoubleHeightUp, model.Cell{X: 11, Y: 3, Z: 11}, model.Euler{}),
		model.NewPlacedPart(catalog.PartBlock, model.Cell{X: 16, Y: 2, Z: 10}, model.EulerFromDegrees(0, 90, 0)),
	}
	parts[1].Color = 3
	s := editor.NewSession(model.DefaultEditorConfig(), catalog.Default(), parts, zerolog.Nop())
	require.NoError(t, s.Select(parts[2]))
	return s, parts
}
