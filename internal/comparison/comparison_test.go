package comparison_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/vicenzoscavino1999/comparador-excel/internal/comparison"
	"github.com/vicenzoscavino1999/comparador-excel/internal/model"
	"github.com/vicenzoscavino1999/comparador-excel/internal/parser"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	for i, cells := range rows {
		row := cells
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

func TestCompareFiles_EndToEnd(t *testing.T) {
	file1 := buildWorkbook(t, [][]interface{}{
		{"Código", "Producto", "Cantidad"},
		{"100", "Detergente", "5"},
		{"200", "Jabón", "3"},
	})
	file2 := buildWorkbook(t, [][]interface{}{
		{"Codigo", "Descripcion", "Stock"},
		{"100", "Detergente", "4"},
		{"300", "Cloro", "6"},
	})

	output, summary, err := comparison.New().CompareFiles(file1, "inv1.xlsx", file2, "inv2.xlsx")
	if err != nil {
		t.Fatalf("CompareFiles failed: %v", err)
	}

	if summary.TotalCompared != 3 {
		t.Fatalf("totalCompared want=3 got=%d", summary.TotalCompared)
	}
	if summary.WithDifferences != 3 {
		t.Fatalf("withDifferences want=3 got=%d", summary.WithDifferences)
	}
	if summary.OnlyInFirst != 1 || summary.OnlyInSecond != 1 {
		t.Fatalf("unexpected side counts: %+v", summary)
	}
	if summary.TotalDifference != -2 {
		t.Fatalf("totalDifference want=-2 got=%v", summary.TotalDifference)
	}
	if summary.File1.RecordCount != 2 || summary.File1.QuantitySum != 8 {
		t.Fatalf("unexpected file1 stats: %+v", summary.File1)
	}
	if summary.File2.Detected.Quantity != "Stock" {
		t.Fatalf("file2 quantity label want=Stock got=%s", summary.File2.Detected.Quantity)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(output))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer wb.Close()

	if sheets := wb.GetSheetList(); len(sheets) != 5 || sheets[0] != "Resumen" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	rows, err := wb.GetRows("Comparación Completa")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("complete rows want=4 got=%d", len(rows))
	}
	// 行序：文件1的编码在前，文件2独有的编码补在后面
	if rows[1][0] != "100" || rows[2][0] != "200" || rows[3][0] != "300" {
		t.Fatalf("unexpected row order: %v %v %v", rows[1][0], rows[2][0], rows[3][0])
	}
	if rows[1][4] != "1" || rows[2][4] != "3" || rows[3][4] != "-6" {
		t.Fatalf("unexpected differences: %v %v %v", rows[1][4], rows[2][4], rows[3][4])
	}

	total, err := wb.GetCellValue("Resumen", "B12")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if total != "3" {
		t.Fatalf("resumen B12 want=3 got=%s", total)
	}
}

func TestCompareFiles_NormalizesCodesAndQuantities(t *testing.T) {
	// "100.0" 与 "100" 归一化后合并，"1,000" 按千位分隔符解析
	file1 := buildWorkbook(t, [][]interface{}{
		{"Código", "Producto", "Cantidad"},
		{"100.0", "Detergente", "1,000"},
		{"100", "Detergente", "2"},
	})
	file2 := buildWorkbook(t, [][]interface{}{
		{"Código", "Producto", "Cantidad"},
		{"100", "Detergente", "500"},
	})

	output, summary, err := comparison.New().CompareFiles(file1, "inv1.xlsx", file2, "inv2.xlsx")
	if err != nil {
		t.Fatalf("CompareFiles failed: %v", err)
	}

	if summary.TotalCompared != 1 {
		t.Fatalf("totalCompared want=1 got=%d", summary.TotalCompared)
	}
	if summary.OnlyInFirst != 0 || summary.OnlyInSecond != 0 {
		t.Fatalf("unexpected side counts: %+v", summary)
	}
	if summary.File1.RecordCount != 1 || summary.File1.QuantitySum != 1002 {
		t.Fatalf("unexpected file1 stats: %+v", summary.File1)
	}
	if summary.TotalDifference != 502 {
		t.Fatalf("totalDifference want=502 got=%v", summary.TotalDifference)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(output))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Comparación Completa")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("complete rows want=2 got=%d", len(rows))
	}
	if rows[1][0] != "100" || rows[1][2] != "1002" || rows[1][3] != "500" || rows[1][4] != "502" {
		t.Fatalf("unexpected row: %v", rows[1])
	}
}

func TestCompareFiles_MissingCodeColumn(t *testing.T) {
	bad := buildWorkbook(t, [][]interface{}{
		{"Descripcion", "Cantidad"},
		{"Detergente", "5"},
	})
	good := buildWorkbook(t, [][]interface{}{
		{"Código", "Producto", "Cantidad"},
		{"100", "Detergente", "5"},
	})

	_, _, err := comparison.New().CompareFiles(bad, "malo.xlsx", good, "bueno.xlsx")
	if err == nil {
		t.Fatalf("expected error")
	}
	var colErr *parser.ColumnNotFoundError
	if !errors.As(err, &colErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if colErr.Role != model.RoleCode {
		t.Fatalf("role want=%s got=%s", model.RoleCode, colErr.Role)
	}
}

func TestProcessFile_AggregatesAndSorts(t *testing.T) {
	content := buildWorkbook(t, [][]interface{}{
		{"Código", "Producto", "Cantidad"},
		{"900", "Cloro", "2"},
		{"100", "Detergente", "3"},
		{"100", "", "7"},
	})

	table, assign, err := comparison.New().ProcessFile(content, "inv.xlsx")
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if assign.HeaderRow != 0 {
		t.Fatalf("header row want=0 got=%d", assign.HeaderRow)
	}
	if len(table.Records) != 2 {
		t.Fatalf("records want=2 got=%d", len(table.Records))
	}
	if table.Records[0].Code != "100" || table.Records[0].Quantity != 10 {
		t.Fatalf("unexpected first record: %+v", table.Records[0])
	}
	if table.Records[1].Code != "900" {
		t.Fatalf("unexpected second record: %+v", table.Records[1])
	}
}
