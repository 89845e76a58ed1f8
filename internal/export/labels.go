package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/voxedit/internal/model"
)

// LabelInfo holds the data encoded into each part label's QR code.
type LabelInfo struct {
	InstanceID string     `json:"id"`
	PartID     uint16     `json:"part"`
	Name       string     `json:"name"`
	Position   model.Cell `json:"pos"`
	Rotation   [3]float64 `json:"rot_deg"`
	Color      uint8      `json:"color"`
	Modifier   uint8      `json:"modifier,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos extracts label information for the parts in scope, in
// enumeration order.
func CollectLabelInfos(a Assembly, scope model.Scope) []LabelInfo {
	cat := a.Catalog()
	var labels []LabelInfo
	for _, p := range collect(a, scope) {
		rx, ry, rz := p.Rotation.Degrees()
		labels = append(labels, LabelInfo{
			InstanceID: p.ID,
			PartID:     p.PartID,
			Name:       cat.Name(p.PartID),
			Position:   p.Position,
			Rotation:   [3]float64{rx, ry, rz},
			Color:      p.Color,
			Modifier:   p.Modifier,
		})
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels for the parts in scope.
// Labels are laid out on a standard label sheet format (Avery 5160 /
// 3 columns x 10 rows on US Letter).
func ExportLabels(path string, a Assembly, scope model.Scope) error {
	labels := CollectLabelInfos(a, scope)
	if len(labels) == 0 {
		return fmt.Errorf("no parts to generate labels for (scope %s)", scope)
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.InstanceID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, index int, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// fpdf reuses images by name
	imgName := fmt.Sprintf("qr_%d_%s", index, info.InstanceID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	name := info.Name
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pos := fmt.Sprintf("@ (%d, %d, %d)", info.Position.X, info.Position.Y, info.Position.Z)
	pdf.CellFormat(textW, 3.5, pos, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Type %d | %s", info.PartID, info.InstanceID), "", 1, "L", false, 0, "")

	if info.Rotation != [3]float64{} {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		rot := fmt.Sprintf("Rot %.0f / %.0f / %.0f", info.Rotation[0], info.Rotation[1], info.Rotation[2])
		pdf.CellFormat(textW, 3, rot, "", 0, "L", false, 0, "")
	}

	// Colour swatch under the text
	col := paletteColor(info.Color)
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.Rect(textX, y+labelHeight-labelPadding-3, 6, 3, "F")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
