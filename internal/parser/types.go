package parser

import (
	"github.com/vicenzoscavino1999/comparador-excel/internal/model"
)

// RawSheet 原始表格：按文本读入的行列数据，尚未判定表头
type RawSheet struct {
	Rows [][]string
}

// Cell 读取单元格，越界返回空串（行宽不齐时常见）
func (s *RawSheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ColumnCount 列数取所有行的最大宽度
func (s *RawSheet) ColumnCount() int {
	max := 0
	for _, r := range s.Rows {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}

// ColumnAssignment 列角色判定结果
type ColumnAssignment struct {
	HeaderRow     int      `json:"headerRow"` // 表头行下标，-1 表示未检测到表头
	Columns       []string `json:"columns"`   // 各列标签（无表头时为位置推断的合成名）
	CodeIndex     int      `json:"codeIndex"`
	ProductIndex  int      `json:"productIndex"`  // -1 表示缺失，商品名列允许缺失
	QuantityIndex int      `json:"quantityIndex"` // -1 表示缺失
}

// DataStart 数据起始行下标（表头行之后；无表头时从第 0 行开始）
func (a *ColumnAssignment) DataStart() int {
	return a.HeaderRow + 1
}

// Detected 各角色对应的列标签（商品名缺失时使用占位标签）
func (a *ColumnAssignment) Detected() model.DetectedColumns {
	d := model.DetectedColumns{Product: model.ProductNotDetected}
	if a.CodeIndex >= 0 {
		d.Code = a.Columns[a.CodeIndex]
	}
	if a.ProductIndex >= 0 {
		d.Product = a.Columns[a.ProductIndex]
	}
	if a.QuantityIndex >= 0 {
		d.Quantity = a.Columns[a.QuantityIndex]
	}
	return d
}
