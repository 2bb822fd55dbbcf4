package parser

import (
	"sort"
	"strings"

	"github.com/vicenzoscavino1999/comparador-excel/internal/model"
)

// TableBuilder 规范表构建器：逐行清洗、过滤无效编码并按编码聚合
type TableBuilder struct{}

// NewTableBuilder 创建规范表构建器
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{}
}

// BuildTable 把判定好角色的原始表格整理成规范表
// 聚合规则：同编码数量累加，名称取首个有效值，结果按编码升序
func (b *TableBuilder) BuildTable(sheet *RawSheet, assign *ColumnAssignment) *model.CanonicalTable {
	codeLabel := strings.ToLower(strings.TrimSpace(assign.Columns[assign.CodeIndex]))

	type group struct {
		product  string
		quantity float64
	}
	groups := make(map[string]*group)
	codes := make([]string, 0)

	for row := assign.DataStart(); row < len(sheet.Rows); row++ {
		rawCode := sheet.Cell(row, assign.CodeIndex)
		// 分页导出常把表头混进数据，与编码列标签相同的行直接丢弃
		if strings.ToLower(strings.TrimSpace(rawCode)) == codeLabel {
			continue
		}
		code := NormalizeCode(rawCode)
		if code == "" || code == "NAN" {
			continue
		}

		quantity := ParseQuantity(sheet.Cell(row, assign.QuantityIndex))
		product := ""
		if assign.ProductIndex >= 0 {
			product = cleanProductCell(sheet.Cell(row, assign.ProductIndex))
		}

		g, ok := groups[code]
		if !ok {
			g = &group{}
			groups[code] = g
			codes = append(codes, code)
		}
		g.quantity += quantity
		if g.product == "" && product != "" && strings.ToUpper(product) != "NAN" {
			g.product = product
		}
	}

	sort.Strings(codes)

	table := &model.CanonicalTable{Records: make([]model.CanonicalRecord, 0, len(codes))}
	for _, code := range codes {
		g := groups[code]
		table.Records = append(table.Records, model.CanonicalRecord{
			Code:     code,
			Product:  g.product,
			Quantity: g.quantity,
		})
	}
	return table
}
