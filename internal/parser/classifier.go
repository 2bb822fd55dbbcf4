package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vicenzoscavino1999/comparador-excel/internal/model"
)

// ColumnClassifier 列角色分类器：先探测表头行，再按规则判定编码/名称/数量列
type ColumnClassifier struct{}

// NewColumnClassifier 创建列角色分类器
func NewColumnClassifier() *ColumnClassifier {
	return &ColumnClassifier{}
}

// DetectColumns 探测表头并判定各角色列，预览场景允许角色缺失
func (c *ColumnClassifier) DetectColumns(sheet *RawSheet) *ColumnAssignment {
	assign := &ColumnAssignment{
		HeaderRow:     detectHeaderRow(sheet),
		CodeIndex:     -1,
		ProductIndex:  -1,
		QuantityIndex: -1,
	}

	if assign.HeaderRow >= 0 {
		cols := make([]string, sheet.ColumnCount())
		copy(cols, sheet.Rows[assign.HeaderRow])
		assign.Columns = cols
	} else {
		assign.Columns = assignPositionalColumns(sheet)
	}

	assign.CodeIndex = detectColumn(assign.Columns, codePatterns)
	assign.ProductIndex = detectColumn(assign.Columns, productPatterns)
	assign.QuantityIndex = detectColumn(assign.Columns, quantityPatterns)
	return assign
}

// Classify 判定角色列，编码列或数量列缺失时返回错误
func (c *ColumnClassifier) Classify(sheet *RawSheet) (*ColumnAssignment, error) {
	assign := c.DetectColumns(sheet)
	if assign.CodeIndex < 0 {
		return nil, &ColumnNotFoundError{Role: model.RoleCode, AvailableColumns: assign.Columns}
	}
	if assign.QuantityIndex < 0 {
		return nil, &ColumnNotFoundError{Role: model.RoleQuantity, AvailableColumns: assign.Columns}
	}
	return assign, nil
}

// detectHeaderRow 在前若干行里找表头：一行内关键词累计命中 2 次以上即认定
// 同一单元格可命中多个关键词（如 "código" 同时命中 cod 与 código）
func detectHeaderRow(sheet *RawSheet) int {
	limit := len(sheet.Rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		matches := 0
		for _, cell := range sheet.Rows[i] {
			value := strings.ToLower(strings.TrimSpace(cell))
			for _, kw := range headerKeywords {
				if strings.Contains(value, kw) {
					matches++
				}
			}
		}
		if matches >= 2 {
			return i
		}
	}
	return -1
}

// detectColumn 逐列扫描，返回首个命中任一规则的列下标，未命中返回 -1
func detectColumn(columns, patterns []string) int {
	for i, col := range columns {
		label := strings.ToLower(strings.TrimSpace(col))
		for _, pattern := range patterns {
			if matchPattern(label, pattern) {
				return i
			}
		}
	}
	return -1
}

// assignPositionalColumns 无表头时按数据特征推断列名
// 规则：首个数值占比超 70% 且均长小于 15 的列为编码，其后的数值列为数量，
// 均长超 10 的列视作商品名称，其余列给合成名 Columna_{i}
func assignPositionalColumns(sheet *RawSheet) []string {
	n := sheet.ColumnCount()
	columns := make([]string, n)
	codeAssigned := false
	quantityAssigned := false

	for i := 0; i < n; i++ {
		values := make([]string, 0, len(sheet.Rows))
		for r := range sheet.Rows {
			if v := sheet.Cell(r, i); v != "" {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			columns[i] = fmt.Sprintf("Columna_%d", i)
			continue
		}

		numeric := 0
		totalLen := 0
		for _, v := range values {
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && !math.IsNaN(f) {
				numeric++
			}
			totalLen += utf8.RuneCountInString(v)
		}
		mostlyNumeric := float64(numeric)/float64(len(values)) > 0.7
		avgLength := float64(totalLen) / float64(len(values))

		switch {
		case !codeAssigned && mostlyNumeric && avgLength < 15:
			columns[i] = "Código"
			codeAssigned = true
		case !quantityAssigned && mostlyNumeric && codeAssigned:
			columns[i] = "Cantidad"
			quantityAssigned = true
		case avgLength > 10:
			columns[i] = "Producto"
		default:
			columns[i] = fmt.Sprintf("Columna_%d", i)
		}
	}
	return columns
}
