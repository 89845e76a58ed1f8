// Package export renders assemblies to printable build sheets and QR-coded
// part labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/voxedit/internal/catalog"
	"github.com/piwi3910/voxedit/internal/grid"
	"github.com/piwi3910/voxedit/internal/model"
	"github.com/piwi3910/voxedit/internal/partset"
)

// Assembly is the read-only view of an editing session the exporters need.
// *editor.Session satisfies it.
type Assembly interface {
	Parts(scope model.Scope) *partset.Enumerator
	Vacancy() *grid.Grid
	SelectedGrid() *grid.Grid
	Catalog() *catalog.Catalog
	Bounds() (min, max model.Cell, ok bool)
}

// partColor represents an RGB color.
type partColor struct {
	R, G, B int
}

// partColors is the paint palette indexed by PlacedPart.Color.
var partColors = []partColor{
	{R: 158, G: 158, B: 158}, // grey
	{R: 76, G: 175, B: 80},   // green
	{R: 33, G: 150, B: 243},  // blue
	{R: 255, G: 152, B: 0},   // orange
	{R: 156, G: 39, B: 176},  // purple
	{R: 0, G: 188, B: 212},   // cyan
	{R: 244, G: 67, B: 54},   // red
	{R: 255, G: 235, B: 59},  // yellow
	{R: 121, G: 85, B: 72},   // brown
}

func paletteColor(i uint8) partColor {
	return partColors[int(i)%len(partColors)]
}

// Layer cell colours.
var (
	colorVacancy  = partColor{R: 120, G: 144, B: 156}
	colorSelected = partColor{R: 33, G: 150, B: 243}
	colorOverlap  = partColor{R: 244, G: 67, B: 54}
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	rowHeight    = 5.5
)

// CellKind tells which grid a layer cell came from.
type CellKind int

const (
	CellVacancy  CellKind = iota // Unselected part
	CellSelected                 // Selected part
	CellOverlap                  // Present in both grids
)

// LayerCell is one occupied cell in a horizontal slice.
type LayerCell struct {
	X, Z int
	Kind CellKind
}

// Layer is every occupied cell at one Y coordinate.
type Layer struct {
	Y     int
	Cells []LayerCell
}

// CollectLayers slices the assembly's grids into non-empty Y layers,
// bottom first.
func CollectLayers(a Assembly) []Layer {
	lo, hi, ok := a.Bounds()
	if !ok {
		return nil
	}
	vac, sel := a.Vacancy(), a.SelectedGrid()

	var layers []Layer
	for y := max(lo.Y, 0); y <= min(hi.Y, model.GridSize-1); y++ {
		kinds := make(map[[2]int]CellKind)
		var order [][2]int
		vac.Layer(y, func(x, z int) {
			k := [2]int{x, z}
			kinds[k] = CellVacancy
			order = append(order, k)
		})
		sel.Layer(y, func(x, z int) {
			k := [2]int{x, z}
			if _, seen := kinds[k]; seen {
				kinds[k] = CellOverlap
				return
			}
			kinds[k] = CellSelected
			order = append(order, k)
		})
		if len(order) == 0 {
			continue
		}
		layer := Layer{Y: y, Cells: make([]LayerCell, len(order))}
		for i, k := range order {
			layer.Cells[i] = LayerCell{X: k[0], Z: k[1], Kind: kinds[k]}
		}
		layers = append(layers, layer)
	}
	return layers
}

// ExportBuildSheet generates a PDF with a parts table followed by one page
// per non-empty horizontal layer.
func ExportBuildSheet(path string, a Assembly) error {
	parts := collect(a, model.ScopeAll)
	if len(parts) == 0 {
		return fmt.Errorf("no parts to export")
	}
	lo, hi, _ := a.Bounds()

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	renderPartsTable(pdf, a, parts, lo, hi)

	for _, layer := range CollectLayers(a) {
		pdf.AddPage()
		renderLayerPage(pdf, layer, lo, hi)
	}

	return pdf.OutputFileAndClose(path)
}

// collect drains one enumeration of the assembly.
func collect(a Assembly, scope model.Scope) []*model.PlacedPart {
	var parts []*model.PlacedPart
	it := a.Parts(scope)
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		parts = append(parts, p)
	}
	return parts
}

// renderPartsTable lists every part, adding pages as rows overflow.
func renderPartsTable(pdf *fpdf.Fpdf, a Assembly, parts []*model.PlacedPart, lo, hi model.Cell) {
	cat := a.Catalog()
	selected := make(map[*model.PlacedPart]bool)
	for _, p := range collect(a, model.ScopeSelected) {
		selected[p] = true
	}

	cols := []struct {
		title string
		width float64
	}{
		{"#", 12}, {"Instance", 28}, {"Type", 18}, {"Name", 62},
		{"Position", 40}, {"Rotation (deg)", 52}, {"Color", 25}, {"Selected", 22},
	}

	header := func(title string) {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetXY(marginLeft, marginTop)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(marginLeft, marginTop+headerHeight)
		stats := fmt.Sprintf("Parts: %d | Cells: %d | Bounds: (%d, %d, %d) - (%d, %d, %d)",
			len(parts), a.Vacancy().Count()+a.SelectedGrid().Count(), lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		pdf.SetXY(marginLeft, drawAreaTop)
		for _, c := range cols {
			pdf.CellFormat(c.width, rowHeight+1, c.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}

	header("Build Sheet")
	for i, p := range parts {
		if pdf.GetY()+rowHeight > pageHeight-marginBottom {
			header("Build Sheet (continued)")
		}
		pdf.SetX(marginLeft)

		rx, ry, rz := p.Rotation.Degrees()
		cells := []string{
			fmt.Sprintf("%d", i+1),
			p.ID,
			fmt.Sprintf("%d", p.PartID),
			cat.Name(p.PartID),
			fmt.Sprintf("%d, %d, %d", p.Position.X, p.Position.Y, p.Position.Z),
			fmt.Sprintf("%.0f, %.0f, %.0f", rx, ry, rz),
			"",
			yesNo(selected[p]),
		}
		for j, c := range cols {
			x, y := pdf.GetXY()
			pdf.CellFormat(c.width, rowHeight, cells[j], "1", 0, "L", false, 0, "")
			if c.title == "Color" {
				col := paletteColor(p.Color)
				pdf.SetFillColor(col.R, col.G, col.B)
				pdf.Rect(x+1.5, y+1, 3.5, rowHeight-2, "F")
				pdf.SetXY(x+6, y)
				pdf.CellFormat(c.width-6, rowHeight, fmt.Sprintf("%d", p.Color), "", 0, "L", false, 0, "")
				pdf.SetXY(x+c.width, y)
			}
		}
		pdf.Ln(-1)
	}
}

// renderLayerPage draws one Y slice of the assembly as a top-down grid.
// The drawing spans the whole assembly footprint so layers line up.
func renderLayerPage(pdf *fpdf.Fpdf, layer Layer, lo, hi model.Cell) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Layer Y = %d", layer.Y)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, fmt.Sprintf("Occupied cells: %d", len(layer.Cells)), "", 0, "L", false, 0, "")

	cols := hi.X - lo.X + 1
	rows := hi.Z - lo.Z + 1
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - 10

	cell := math.Min(drawWidth/float64(cols), drawHeight/float64(rows))
	cell = math.Min(cell, 12)
	canvasW := cell * float64(cols)
	canvasH := cell * float64(rows)
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	if cell >= 2 {
		pdf.SetDrawColor(215, 215, 215)
		pdf.SetLineWidth(0.1)
		for i := 1; i < cols; i++ {
			x := offsetX + float64(i)*cell
			pdf.Line(x, offsetY, x, offsetY+canvasH)
		}
		for i := 1; i < rows; i++ {
			y := offsetY + float64(i)*cell
			pdf.Line(offsetX, y, offsetX+canvasW, y)
		}
	}

	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.2)
	for _, c := range layer.Cells {
		col := colorVacancy
		switch c.Kind {
		case CellSelected:
			col = colorSelected
		case CellOverlap:
			col = colorOverlap
		}
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(offsetX+float64(c.X-lo.X)*cell, offsetY+float64(c.Z-lo.Z)*cell, cell, cell, "FD")
	}

	drawAxisAnnotations(pdf, lo, hi, offsetX, offsetY, canvasW, canvasH)
	drawLayerLegend(pdf, offsetY+canvasH+7)
}

// drawAxisAnnotations labels the X range below the grid and the Z range to
// its left.
func drawAxisAnnotations(pdf *fpdf.Fpdf, lo, hi model.Cell, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	xLabel := fmt.Sprintf("X %d .. %d", lo.X, hi.X)
	xW := pdf.GetStringWidth(xLabel)
	pdf.SetXY(offsetX+(canvasW-xW)/2, offsetY+canvasH+1)
	pdf.CellFormat(xW, 4, xLabel, "", 0, "C", false, 0, "")

	zLabel := fmt.Sprintf("Z %d .. %d", lo.Z, hi.Z)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	zW := pdf.GetStringWidth(zLabel)
	pdf.SetXY(offsetX-3-zW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(zW, 4, zLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func drawLayerLegend(pdf *fpdf.Fpdf, y float64) {
	pdf.SetFont("Helvetica", "", 8)
	x := marginLeft
	for _, item := range []struct {
		label string
		col   partColor
	}{
		{"Placed", colorVacancy},
		{"Selected", colorSelected},
		{"Overlap", colorOverlap},
	} {
		pdf.SetFillColor(item.col.R, item.col.G, item.col.B)
		pdf.Rect(x, y+0.5, 3, 3, "F")
		pdf.SetXY(x+4, y)
		w := pdf.GetStringWidth(item.label) + 2
		pdf.CellFormat(w, 4, item.label, "", 0, "L", false, 0, "")
		x += w + 8
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
