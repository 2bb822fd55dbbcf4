package model

// ColumnRole 列角色（对账所需的三个语义列）
type ColumnRole string

const (
	RoleCode     ColumnRole = "codigo"   // 商品编码，对账主键
	RoleProduct  ColumnRole = "producto" // 商品名称，可缺失
	RoleQuantity ColumnRole = "cantidad" // 数量
)

// ProductNotDetected 未检测到商品名称列时的占位标签
const ProductNotDetected = "(no detectado)"

// DetectedColumns 单个文件检测出的语义列标签
type DetectedColumns struct {
	Code     string `json:"codigo"`
	Product  string `json:"producto"`
	Quantity string `json:"cantidad"`
}

// CanonicalRecord 归一化后的单条库存记录
type CanonicalRecord struct {
	Code     string  `json:"codigo"`
	Product  string  `json:"producto"`
	Quantity float64 `json:"cantidad"`
}

// CanonicalTable 单个文件归一化后的结果表（编码在表内唯一，按编码升序）
type CanonicalTable struct {
	Records []CanonicalRecord `json:"records"`
}

// ByCode 构建编码索引
func (t *CanonicalTable) ByCode() map[string]CanonicalRecord {
	index := make(map[string]CanonicalRecord, len(t.Records))
	for _, r := range t.Records {
		index[r.Code] = r
	}
	return index
}

// TotalQuantity 数量合计
func (t *CanonicalTable) TotalQuantity() float64 {
	var sum float64
	for _, r := range t.Records {
		sum += r.Quantity
	}
	return sum
}
