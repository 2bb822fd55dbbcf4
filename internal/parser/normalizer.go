package parser

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeCode 规范化编码：去空格转大写，去掉 Excel 浮点化产生的 .0 尾缀
// 科学计数法用 decimal 还原成完整数字，长编码不走 float 以免丢精度
func NormalizeCode(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	code = strings.TrimSuffix(code, ".0")
	if strings.Contains(code, "E") {
		if dec, err := decimal.NewFromString(code); err == nil && dec.IsInteger() {
			code = dec.String()
		}
	}
	return code
}

// ParseQuantity 解析数量，兼容欧美两种千分位/小数点写法与空格
// 解析失败按 0 处理
func ParseQuantity(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ToUpper(s) == "NAN" {
		return 0
	}
	s = strings.ReplaceAll(s, " ", "")

	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots == 1 && commas == 0:
		// 标准小数写法，原样解析
	case dots == 0 && commas == 1:
		// 逗号后不超过两位按欧式小数（"1,5"），否则按千分位（"1,234"）
		afterComma := len(s) - strings.LastIndex(s, ",") - 1
		if afterComma <= 2 {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case dots >= 1 && commas >= 1:
		// 两种符号并存时靠后的视为小数点
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// cleanProductCell 商品名称去首尾空格，pandas 残留的 nan 字面量清为空串
func cleanProductCell(raw string) string {
	s := strings.TrimSpace(raw)
	switch s {
	case "nan", "NaN", "NAN":
		return ""
	}
	return s
}
