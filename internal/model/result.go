package model

// ComparisonRow 全外连接后的单行（两侧数量与带符号差值）
type ComparisonRow struct {
	Code       string  `json:"codigo"`
	Product    string  `json:"producto"`
	Quantity1  float64 `json:"cantidadArchivo1"`
	Quantity2  float64 `json:"cantidadArchivo2"`
	Difference float64 `json:"diferencia"`
}

// SideRow 只出现在一侧的行
type SideRow struct {
	Code     string  `json:"codigo"`
	Product  string  `json:"producto"`
	Quantity float64 `json:"cantidad"`
}

// ReconciliationResult 对账结果的四个视图
type ReconciliationResult struct {
	Complete     []ComparisonRow `json:"complete"`     // 两侧并集，每个编码一行
	Differences  []ComparisonRow `json:"differences"`  // 差值非零的子集
	OnlyInFirst  []SideRow       `json:"onlyInFirst"`  // 仅在文件1
	OnlyInSecond []SideRow       `json:"onlyInSecond"` // 仅在文件2
}

// FileSummary 单个输入文件的统计
type FileSummary struct {
	Filename    string          `json:"filename"`
	RecordCount int             `json:"recordCount"`
	QuantitySum float64         `json:"quantitySum"`
	Detected    DetectedColumns `json:"detected"`
}

// Summary 对账汇总（供结果工作簿的 Resumen 页与日志使用）
type Summary struct {
	File1           FileSummary `json:"file1"`
	File2           FileSummary `json:"file2"`
	TotalCompared   int         `json:"totalCompared"`
	WithDifferences int         `json:"withDifferences"`
	OnlyInFirst     int         `json:"onlyInFirst"`
	OnlyInSecond    int         `json:"onlyInSecond"`
	TotalDifference float64     `json:"totalDifference"`
}
