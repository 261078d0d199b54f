package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/pipecut/internal/model"
)

// buildTestResult creates a realistic multi-size plan for testing.
func buildTestResult() model.MultiPlanResult {
	return model.MultiPlanResult{
		Pipes: []model.PipeResult{
			{
				PipeNumber: 1,
				PipeLabel:  "Leftover 1800 mm",
				Cuts:       []float64{868, 868},
				NumCuts:    2,
				Kerf:       6,
				Used:       1742,
				Scrap:      58,
				ScrapClass: model.ScrapNotUsable,
				IsLeftover: true,
				LeftoverID: "lo1",
			},
			{
				PipeNumber: 2,
				PipeLabel:  "Raw pipe (3600 mm)",
				Cuts:       []float64{868, 450, 450, 450},
				NumCuts:    4,
				Kerf:       12,
				Used:       2230,
				Scrap:      1370,
				ScrapClass: model.ScrapUsable,
			},
		},
		TotalPipes: 2,
		TotalUsed:  3972,
		TotalScrap: 1428,
		TotalKerf:  18,
		RawLength:  3600,
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")

	err := ExportPDF(path, buildTestResult(), model.DefaultSettings())
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.MultiPlanResult{}, model.DefaultSettings())
	if err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	err := ExportLabels(path, buildTestResult(), model.DefaultSettings())
	if err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("labels file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("labels file is empty")
	}
}

func TestCollectLabelInfos_OnlySavedOffcuts(t *testing.T) {
	settings := model.DefaultSettings()
	labels := CollectLabelInfos(buildTestResult(), settings)

	// Pipe 1's 58 mm scrap is below the save threshold; only pipe 2's
	// 1370 mm remainder gets a label.
	if len(labels) != 1 {
		t.Fatalf("expected 1 label, got %d", len(labels))
	}
	if labels[0].PipeNumber != 2 {
		t.Errorf("expected label for pipe 2, got pipe %d", labels[0].PipeNumber)
	}
	if labels[0].Length != 1370 {
		t.Errorf("expected label length 1370, got %.2f", labels[0].Length)
	}
}

func TestCollectLabelInfos_SkipsUntouchedLeftovers(t *testing.T) {
	result := model.MultiPlanResult{
		Pipes: []model.PipeResult{
			{
				PipeNumber: 1,
				PipeLabel:  "Leftover 900 mm",
				NumCuts:    0,
				Scrap:      900,
				ScrapClass: model.ScrapUsable,
				IsLeftover: true,
				LeftoverID: "lo1",
			},
		},
		TotalPipes: 1,
	}
	labels := CollectLabelInfos(result, model.DefaultSettings())
	if len(labels) != 0 {
		t.Fatalf("untouched leftover must not get a new label, got %d", len(labels))
	}
}

func TestExportXLSX_CreatesReadableWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")

	if err := ExportXLSX(path, buildTestResult()); err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	label, err := f.GetCellValue(planSheet, "B2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if label != "Leftover 1800 mm" {
		t.Errorf("expected pipe 1 label in B2, got %q", label)
	}

	cuts, err := f.GetCellValue(planSheet, "C3")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if cuts != "868, 450, 450, 450" {
		t.Errorf("unexpected cut list in C3: %q", cuts)
	}
}

func TestExportXLSX_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := ExportXLSX(path, model.MultiPlanResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportDXF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")

	if err := ExportDXF(path, buildTestResult(), model.DefaultSettings()); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("DXF file is empty")
	}
}
