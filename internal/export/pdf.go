// Package export provides functionality for exporting cutting plans to
// various file formats.
package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/pipecut/internal/model"
)

// cutColor represents an RGB color for a drawn piece.
type cutColor struct {
	R, G, B int
}

// cutColors is the palette cycled through for the pieces on one pipe.
var cutColors = []cutColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 20.0 // Vertical space per pipe row
	barHeight    = 10.0 // Height of the pipe bar itself
	pipesPerPage = 8
)

// ExportPDF generates a PDF document for a multi-size cutting plan. Each
// pipe is rendered as a horizontal bar with its pieces, kerf and scrap, and
// a summary block closes the document.
func ExportPDF(path string, result model.MultiPlanResult, settings model.PlanSettings) error {
	if len(result.Pipes) == 0 {
		return fmt.Errorf("no pipes to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, pipe := range result.Pipes {
		if i%pipesPerPage == 0 {
			pdf.AddPage()
			renderPlanHeader(pdf, result)
		}
		rowTop := marginTop + headerHeight + 5 + float64(i%pipesPerPage)*(rowHeight+8)
		renderPipeRow(pdf, pipe, rowTop, settings)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderPlanHeader draws the page title line.
func renderPlanHeader(pdf *fpdf.Fpdf, result model.MultiPlanResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Cutting plan: %d pipes (raw %.0f mm)", result.TotalPipes, result.RawLength)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")
}

// renderPipeRow draws one pipe as a scaled horizontal bar: colored pieces,
// thin dark kerf strips, and gray scrap at the end.
func renderPipeRow(pdf *fpdf.Fpdf, pipe model.PipeResult, rowTop float64, settings model.PlanSettings) {
	capacity := pipe.Used + pipe.Scrap
	if capacity <= 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(marginLeft, rowTop)
	label := fmt.Sprintf("Pipe %d - %s: %d cuts, scrap %.2f mm (%s)",
		pipe.PipeNumber, pipe.PipeLabel, pipe.NumCuts, pipe.Scrap, pipe.ScrapClass)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, label, "", 0, "L", false, 0, "")

	barTop := rowTop + 6
	drawWidth := pageWidth - marginLeft - marginRight
	scale := drawWidth / capacity

	// Pipe outline
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(marginLeft, barTop, capacity*scale, barHeight, "D")

	x := marginLeft
	for ci, cut := range pipe.Cuts {
		c := cutColors[ci%len(cutColors)]
		pdf.SetFillColor(c.R, c.G, c.B)
		w := cut * scale
		pdf.Rect(x, barTop, w, barHeight, "FD")

		// Piece length centered in the segment when it fits
		text := fmt.Sprintf("%.0f", cut)
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(255, 255, 255)
		if pdf.GetStringWidth(text) < w-1 {
			pdf.SetXY(x, barTop+barHeight/2-1.5)
			pdf.CellFormat(w, 3, text, "", 0, "C", false, 0, "")
		}
		x += w

		// Kerf strip
		pdf.SetFillColor(60, 60, 60)
		pdf.Rect(x, barTop, settings.Kerf*scale, barHeight, "F")
		x += settings.Kerf * scale
	}

	// Scrap
	if pipe.Scrap > 0 {
		pdf.SetFillColor(220, 220, 220)
		pdf.Rect(x, barTop, pipe.Scrap*scale, barHeight, "F")
	}
	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the totals block on the final page.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.MultiPlanResult, settings model.PlanSettings) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Summary", "", 0, "L", false, 0, "")

	lines := []string{
		fmt.Sprintf("Pipes used: %d", result.TotalPipes),
		fmt.Sprintf("Material used (incl. kerf): %.2f mm", result.TotalUsed),
		fmt.Sprintf("Total kerf loss: %.2f mm", result.TotalKerf),
		fmt.Sprintf("Total scrap: %.2f mm", result.TotalScrap),
		fmt.Sprintf("Kerf per cut: %.2f mm", settings.Kerf),
	}
	if result.LastPipeOverLimit {
		lines = append(lines, fmt.Sprintf(
			"WARNING: final pipe scrap exceeds the %.0f mm limit", settings.LastPipeScrapMax))
	}

	pdf.SetFont("Helvetica", "", 11)
	y := marginTop + headerHeight + 5
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, line, "", 0, "L", false, 0, "")
		y += 7
	}
}
