package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Length,Qty\n868,3\n450,4\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Length;Qty\n868;3\n450;4\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Length\tQty\n868\t3\n450\t4\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Length|Qty\n868|3\n450|4\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Length", "Quantity"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Length != 0 {
		t.Errorf("expected Length at 0, got %d", mapping.Length)
	}
	if mapping.Quantity != 1 {
		t.Errorf("expected Quantity at 1, got %d", mapping.Quantity)
	}
}

func TestDetectColumns_Aliases(t *testing.T) {
	row := []string{"Qty", "Cut Length"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Quantity != 0 {
		t.Errorf("expected Quantity at 0, got %d", mapping.Quantity)
	}
	if mapping.Length != 1 {
		t.Errorf("expected Length at 1, got %d", mapping.Length)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"868", "3"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("numeric row must not be detected as header")
	}
	if mapping.Length != 0 || mapping.Quantity != 1 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── ImportCSV Tests ───────────────────────────────────────

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cuts.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestImportCSV_WithHeader(t *testing.T) {
	path := writeTempCSV(t, "Length,Qty\n868,3\n450,4\n")

	result := ImportCSV(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(result.Requirements))
	}
	if result.Requirements[0].Length != 868 || result.Requirements[0].Quantity != 3 {
		t.Errorf("row 1 mismatch: %+v", result.Requirements[0])
	}
	if result.Requirements[1].Length != 450 || result.Requirements[1].Quantity != 4 {
		t.Errorf("row 2 mismatch: %+v", result.Requirements[1])
	}
}

func TestImportCSV_NoHeader(t *testing.T) {
	path := writeTempCSV(t, "868,3\n450,4\n")

	result := ImportCSV(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(result.Requirements))
	}
}

func TestImportCSV_Semicolon(t *testing.T) {
	path := writeTempCSV(t, "Length;Qty\n868;3\n")

	result := ImportCSV(path)
	if len(result.Requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(result.Requirements))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected semicolon delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSV_InvalidRows(t *testing.T) {
	path := writeTempCSV(t, "Length,Qty\nabc,3\n868,xyz\n450,2\n-100,1\n")

	result := ImportCSV(path)
	if len(result.Requirements) != 1 {
		t.Fatalf("expected 1 valid requirement, got %d", len(result.Requirements))
	}
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportCSV_SkipsEmptyRows(t *testing.T) {
	path := writeTempCSV(t, "Length,Qty\n868,3\n\n,,\n450,4\n")

	result := ImportCSV(path)
	if len(result.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(result.Requirements))
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Fatal("expected error for empty file")
	}
}

func TestImportCSV_MissingFile(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing file")
	}
}

func TestImportCSVFromReader(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Length,Qty\n868,3\n"), ',')
	if len(result.Requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(result.Requirements))
	}
}

func TestImportCSV_HeaderMissingQuantity(t *testing.T) {
	path := writeTempCSV(t, "Length,Notes\n868,foo\n")

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing Quantity column")
	}
	if !strings.Contains(result.Errors[0], "Quantity") {
		t.Errorf("error should name the missing column: %v", result.Errors[0])
	}
}

// ─── ImportExcel Tests ─────────────────────────────────────

func TestImportExcel_WithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cuts.xlsx")

	f := excelize.NewFile()
	defer f.Close()
	data := [][]interface{}{
		{"Length", "Qty"},
		{868, 3},
		{450, 4},
	}
	for i, row := range data {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	result := ImportExcel(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(result.Requirements))
	}
	if result.Requirements[0].Length != 868 || result.Requirements[0].Quantity != 3 {
		t.Errorf("row 1 mismatch: %+v", result.Requirements[0])
	}
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing file")
	}
}
