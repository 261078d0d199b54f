package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/pipecut/internal/model"
)

// LabelInfo holds the data encoded into each offcut label's QR code.
type LabelInfo struct {
	PipeNumber int     `json:"pipe"`
	PipeLabel  string  `json:"pipe_label"`
	Length     float64 `json:"length_mm"`
	Class      string  `json:"class"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page) on US Letter paper.
const (
	labelPageWidth  = 215.9
	labelPageHeight = 279.4
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectLabelInfos extracts one label per remainder queued for inventory,
// so each saved offcut can be physically tagged and found again.
func CollectLabelInfos(result model.MultiPlanResult, settings model.PlanSettings) []LabelInfo {
	var labels []LabelInfo
	for _, p := range result.Pipes {
		if p.Scrap < settings.SaveThreshold {
			continue
		}
		if p.IsLeftover && p.NumCuts == 0 {
			// Untouched leftovers keep their existing tag.
			continue
		}
		labels = append(labels, LabelInfo{
			PipeNumber: p.PipeNumber,
			PipeLabel:  p.PipeLabel,
			Length:     p.Scrap,
			Class:      string(p.ScrapClass),
		})
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels for the offcuts a plan
// sends to inventory. Each label carries the offcut length and a QR code
// encoding its metadata as JSON.
func ExportLabels(path string, result model.MultiPlanResult, settings model.PlanSettings) error {
	labels := CollectLabelInfos(result, settings)
	if len(labels) == 0 {
		return fmt.Errorf("no offcuts to generate labels for")
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
			return fmt.Errorf("render label for pipe %d: %w", label.PipeNumber, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, idx int, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_offcut_%d", idx)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("Offcut %.0f mm", info.Length), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5.5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("From pipe %d (%s)", info.PipeNumber, info.PipeLabel), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9.5)
	pdf.CellFormat(textW, 3, info.Class, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
