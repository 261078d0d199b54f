package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/pipecut/internal/model"
)

const planSheet = "Plan"

// ExportXLSX writes a multi-size cutting plan to an Excel workbook: one row
// per pipe plus a totals block, ready for the shop floor printout.
func ExportXLSX(path string, result model.MultiPlanResult) error {
	if len(result.Pipes) == 0 {
		return fmt.Errorf("no pipes to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", planSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Pipe", "Source", "Cuts (mm)", "Pieces", "Kerf (mm)", "Used (mm)", "Scrap (mm)", "Scrap class"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(planSheet, cell, h); err != nil {
			return err
		}
	}

	for i, p := range result.Pipes {
		row := i + 2
		cuts := make([]string, len(p.Cuts))
		for ci, c := range p.Cuts {
			cuts[ci] = fmt.Sprintf("%.0f", c)
		}
		values := []interface{}{
			p.PipeNumber,
			p.PipeLabel,
			strings.Join(cuts, ", "),
			p.NumCuts,
			p.Kerf,
			p.Used,
			p.Scrap,
			string(p.ScrapClass),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(planSheet, cell, v); err != nil {
				return err
			}
		}
	}

	totalsRow := len(result.Pipes) + 3
	totals := [][2]interface{}{
		{"Total pipes", result.TotalPipes},
		{"Total used (mm)", result.TotalUsed},
		{"Total kerf (mm)", result.TotalKerf},
		{"Total scrap (mm)", result.TotalScrap},
		{"Final pipe over scrap limit", result.LastPipeOverLimit},
	}
	for i, kv := range totals {
		keyCell, err := excelize.CoordinatesToCellName(1, totalsRow+i)
		if err != nil {
			return err
		}
		valCell, err := excelize.CoordinatesToCellName(2, totalsRow+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(planSheet, keyCell, kv[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(planSheet, valCell, kv[1]); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
