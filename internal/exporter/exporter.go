package exporter

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/vicenzoscavino1999/comparador-excel/internal/model"
)

// 结果工作簿的五个工作表，顺序固定
const (
	SheetSummary      = "Resumen"
	SheetComplete     = "Comparación Completa"
	SheetDifferences  = "Solo Diferencias"
	SheetOnlyInFirst  = "No Coinciden Archivo1"
	SheetOnlyInSecond = "No Coinciden Archivo2"
)

// 各视图为空时写入 A1 的提示语
const (
	MsgNoDifferences    = "No hay diferencias entre los archivos"
	MsgAllFirstMatched  = "Todos los códigos del Archivo 1 están en el Archivo 2"
	MsgAllSecondMatched = "Todos los códigos del Archivo 2 están en el Archivo 1"
)

// OutputFilename 下载结果的附件名
const OutputFilename = "comparacion_resultado.xlsx"

var comparisonHeaders = []string{"Código", "Producto", "Cantidad_Archivo1", "Cantidad_Archivo2", "Diferencia"}

var sideHeaders = []string{"Código", "Producto", "Cantidad"}

// Exporter 对账结果导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// styleSet 每个工作簿创建一次的样式集
type styleSet struct {
	header   int // 表头：白字蓝底居中
	cell     int // 数据单元格：细边框左对齐
	positive int // 差值为正：绿底
	negative int // 差值为负：红底
	title    int // Resumen 标题
	section  int // Resumen 小节行
	plain    int // Resumen 普通单元格
}

func newStyleSet(f *excelize.File) *styleSet {
	border := []excelize.Border{
		{Type: "left", Style: 1},
		{Type: "right", Style: 1},
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
	}

	header, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2563EB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    border,
	})
	cell, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left"},
		Border:    border,
	})
	positive, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DCFCE7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left"},
		Border:    border,
	})
	negative, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#FEE2E2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left"},
		Border:    border,
	})
	title, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 14},
		Border: border,
	})
	section, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#F3F4F6"}, Pattern: 1},
		Border: border,
	})
	plain, _ := f.NewStyle(&excelize.Style{
		Border: border,
	})

	return &styleSet{
		header:   header,
		cell:     cell,
		positive: positive,
		negative: negative,
		title:    title,
		section:  section,
		plain:    plain,
	}
}

// Export 渲染对账结果工作簿：Resumen 加四个明细视图
func (e *Exporter) Export(result *model.ReconciliationResult, summary *model.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	styles := newStyleSet(f)

	f.SetSheetName("Sheet1", SheetSummary)
	e.renderSummary(f, styles, summary)

	f.NewSheet(SheetComplete)
	e.renderComparisonSheet(f, styles, SheetComplete, result.Complete)

	f.NewSheet(SheetDifferences)
	if len(result.Differences) > 0 {
		e.renderComparisonSheet(f, styles, SheetDifferences, result.Differences)
	} else {
		f.SetCellValue(SheetDifferences, "A1", MsgNoDifferences)
	}

	f.NewSheet(SheetOnlyInFirst)
	if len(result.OnlyInFirst) > 0 {
		e.renderSideSheet(f, styles, SheetOnlyInFirst, result.OnlyInFirst)
	} else {
		f.SetCellValue(SheetOnlyInFirst, "A1", MsgAllFirstMatched)
	}

	f.NewSheet(SheetOnlyInSecond)
	if len(result.OnlyInSecond) > 0 {
		e.renderSideSheet(f, styles, SheetOnlyInSecond, result.OnlyInSecond)
	} else {
		f.SetCellValue(SheetOnlyInSecond, "A1", MsgAllSecondMatched)
	}

	f.SetActiveSheet(0)
	return f, nil
}

// renderSummary 写 Resumen 页，固定 17 行两列
func (e *Exporter) renderSummary(f *excelize.File, styles *styleSet, summary *model.Summary) {
	rows := [][]interface{}{
		{"RESUMEN DE COMPARACIÓN", ""},
		{"", ""},
		{"Estadísticas Archivo 1", ""},
		{"Total de registros", summary.File1.RecordCount},
		{"Suma de cantidades", summary.File1.QuantitySum},
		{"", ""},
		{"Estadísticas Archivo 2", ""},
		{"Total de registros", summary.File2.RecordCount},
		{"Suma de cantidades", summary.File2.QuantitySum},
		{"", ""},
		{"Resultados de Comparación", ""},
		{"Total registros comparados", summary.TotalCompared},
		{"Registros con diferencias", summary.WithDifferences},
		{"Solo en Archivo 1", summary.OnlyInFirst},
		{"Solo en Archivo 2", summary.OnlyInSecond},
		{"", ""},
		{"Diferencia total de cantidades", summary.TotalDifference},
	}

	for i, row := range rows {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue(SheetSummary, cell, val)
		}
	}

	f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("B%d", len(rows)), styles.plain)
	for _, r := range []int{3, 7, 11} {
		f.SetCellStyle(SheetSummary, fmt.Sprintf("A%d", r), fmt.Sprintf("B%d", r), styles.section)
	}
	f.SetCellStyle(SheetSummary, "A1", "A1", styles.title)

	f.SetColWidth(SheetSummary, "A", "A", 35)
	f.SetColWidth(SheetSummary, "B", "B", 20)
}

// renderComparisonSheet 写五列对账视图（完整对账与差异子集共用）
func (e *Exporter) renderComparisonSheet(f *excelize.File, styles *styleSet, sheet string, rows []model.ComparisonRow) {
	widths := newColumnWidths(comparisonHeaders)
	writeHeaderRow(f, styles, sheet, comparisonHeaders)

	for i, row := range rows {
		n := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", n), row.Code)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", n), row.Product)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", n), row.Quantity1)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", n), row.Quantity2)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", n), row.Difference)
		widths.observe(row.Code, row.Product,
			formatNumber(row.Quantity1), formatNumber(row.Quantity2), formatNumber(row.Difference))
	}

	if len(rows) > 0 {
		f.SetCellStyle(sheet, "A2", fmt.Sprintf("E%d", len(rows)+1), styles.cell)
		// 差值列按符号标色，零差值保持无底色
		for i, row := range rows {
			cell := fmt.Sprintf("E%d", i+2)
			if row.Difference > 0 {
				f.SetCellStyle(sheet, cell, cell, styles.positive)
			} else if row.Difference < 0 {
				f.SetCellStyle(sheet, cell, cell, styles.negative)
			}
		}
	}

	widths.apply(f, sheet)
}

// renderSideSheet 写三列单侧视图
func (e *Exporter) renderSideSheet(f *excelize.File, styles *styleSet, sheet string, rows []model.SideRow) {
	widths := newColumnWidths(sideHeaders)
	writeHeaderRow(f, styles, sheet, sideHeaders)

	for i, row := range rows {
		n := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", n), row.Code)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", n), row.Product)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", n), row.Quantity)
		widths.observe(row.Code, row.Product, formatNumber(row.Quantity))
	}

	if len(rows) > 0 {
		f.SetCellStyle(sheet, "A2", fmt.Sprintf("C%d", len(rows)+1), styles.cell)
	}
	widths.apply(f, sheet)
}

func writeHeaderRow(f *excelize.File, styles *styleSet, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", last, styles.header)
}

// columnWidths 按单元格内容长度自适应列宽，上限 50
type columnWidths struct {
	max []int
}

func newColumnWidths(headers []string) *columnWidths {
	w := &columnWidths{max: make([]int, len(headers))}
	w.observe(headers...)
	return w
}

func (w *columnWidths) observe(values ...string) {
	for i, v := range values {
		if i >= len(w.max) {
			break
		}
		if n := utf8.RuneCountInString(v); n > w.max[i] {
			w.max[i] = n
		}
	}
}

func (w *columnWidths) apply(f *excelize.File, sheet string) {
	for i, max := range w.max {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := float64(max + 2)
		if width > 50 {
			width = 50
		}
		f.SetColWidth(sheet, col, col, width)
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
