package reconciler

import (
	"github.com/vicenzoscavino1999/comparador-excel/internal/model"
)

// Reconciler 对账引擎：对两张规范表按编码做全外连接
type Reconciler struct{}

// New 创建对账引擎
func New() *Reconciler {
	return &Reconciler{}
}

// Reconcile 全外连接两张规范表
// 行序：先按文件1的编码顺序，再补文件2独有的编码；缺席一侧数量按 0 计
func (r *Reconciler) Reconcile(first, second *model.CanonicalTable) *model.ReconciliationResult {
	result := &model.ReconciliationResult{
		Complete:     make([]model.ComparisonRow, 0, len(first.Records)+len(second.Records)),
		Differences:  []model.ComparisonRow{},
		OnlyInFirst:  []model.SideRow{},
		OnlyInSecond: []model.SideRow{},
	}

	secondByCode := second.ByCode()
	firstCodes := make(map[string]struct{}, len(first.Records))

	for _, a := range first.Records {
		firstCodes[a.Code] = struct{}{}
		b, inSecond := secondByCode[a.Code]

		row := model.ComparisonRow{
			Code:      a.Code,
			Product:   coalesceProduct(a.Product, b.Product),
			Quantity1: a.Quantity,
		}
		if inSecond {
			row.Quantity2 = b.Quantity
		}
		row.Difference = row.Quantity1 - row.Quantity2

		result.Complete = append(result.Complete, row)
		if row.Difference != 0 {
			result.Differences = append(result.Differences, row)
		}
		if !inSecond {
			result.OnlyInFirst = append(result.OnlyInFirst, model.SideRow{
				Code:     a.Code,
				Product:  row.Product,
				Quantity: a.Quantity,
			})
		}
	}

	for _, b := range second.Records {
		if _, both := firstCodes[b.Code]; both {
			continue
		}
		row := model.ComparisonRow{
			Code:       b.Code,
			Product:    b.Product,
			Quantity2:  b.Quantity,
			Difference: -b.Quantity,
		}
		result.Complete = append(result.Complete, row)
		if row.Difference != 0 {
			result.Differences = append(result.Differences, row)
		}
		result.OnlyInSecond = append(result.OnlyInSecond, model.SideRow{
			Code:     b.Code,
			Product:  b.Product,
			Quantity: b.Quantity,
		})
	}

	return result
}

// BuildSummary 汇总对账统计，供 Resumen 页与操作日志使用
func BuildSummary(file1, file2 model.FileSummary, result *model.ReconciliationResult) *model.Summary {
	var totalDiff float64
	for _, row := range result.Complete {
		totalDiff += row.Difference
	}
	return &model.Summary{
		File1:           file1,
		File2:           file2,
		TotalCompared:   len(result.Complete),
		WithDifferences: len(result.Differences),
		OnlyInFirst:     len(result.OnlyInFirst),
		OnlyInSecond:    len(result.OnlyInSecond),
		TotalDifference: totalDiff,
	}
}

// coalesceProduct 名称优先取文件1，空则回落文件2
func coalesceProduct(first, second string) string {
	if first != "" {
		return first
	}
	return second
}
