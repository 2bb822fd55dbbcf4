package parser

import "regexp"

// headerScanLimit 表头探测只扫描前 30 行，避免大文件全量读取
const headerScanLimit = 30

// codePatterns 编码列表头的常见写法，按优先级排列，先匹配者生效
var codePatterns = []string{
	`^c[oó]digo.*$`, `^cod\.?.*$`, `^sku.*$`, `^id$`, `^codigo$`,
	`^c[oó]d\.?\s*producto.*$`, `^item$`, `^referencia.*$`, `^ref\.?$`,
	`^art[ií]culo.*$`, `^cod.*art.*$`, `^clave.*$`, `^num.*$`,
	`^n[uú]mero.*$`, `^parte.*$`, `^c[oó]d.*$`, `^barcode.*$`,
	`^upc$`, `^ean$`, `^plu$`,
}

// productPatterns 商品名称列表头的常见写法
var productPatterns = []string{
	`^producto.*$`, `^descripci[oó]n.*$`, `^nombre.*$`, `^art[ií]culo.*$`,
	`^item$`, `^detalle.*$`, `^material.*$`, `^desc\.?.*$`,
	`^denominaci[oó]n.*$`, `^especificaci[oó]n.*$`, `^concepto.*$`,
}

// quantityPatterns 数量列表头的常见写法
var quantityPatterns = []string{
	`^cant\.?\s*final.*$`, `^cantidad.*$`, `^cant\.?.*$`, `^qty.*$`, `^unidades.*$`, `^stock.*$`,
	`^existencia.*$`, `^saldo.*$`, `^und\.?.*$`, `^pzs\.?.*$`,
	`^total.*$`, `^unid.*$`, `^piezas.*$`, `^disponible.*$`,
	`^inventario.*$`, `^disp.*$`, `^almac[eé]n.*$`, `^bodega.*$`,
	`^f[ií]sico.*$`, `^conteo.*$`,
}

// headerKeywords 表头行判定关键词，一行内命中两次以上即认定为表头
var headerKeywords = []string{
	"codigo", "código", "cod", "producto", "descripcion", "descripción",
	"cantidad", "cant", "stock", "unidades", "total", "item", "articulo",
	"artículo", "material", "referencia", "nombre", "detalle",
}

// matchPattern 使用正则匹配，入参需先转小写去空格
func matchPattern(text, pattern string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}
