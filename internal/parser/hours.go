package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/n4clon1/academic-site/pkg/sheet"
)

// ── 总课时（仅第 34 列）的小数逗号处理 ──
//
// 源表中的总课时可能是数值，也可能是 "12,5" 这样的逗号小数字符串。
// 读入时转为数值参与计算，展示时再以逗号小数输出。其余列保持原样。

var (
	commaDecimalRe = regexp.MustCompile(`^\d+,\d+$`)
	leadingFloatRe = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// IsCommaDecimal 字符串形如 "12,5"
func IsCommaDecimal(s string) bool {
	return commaDecimalRe.MatchString(s)
}

// NormalizeTotals 将每行总课时列中的逗号小数字符串就地转为数值
func NormalizeTotals(rows []sheet.Row) {
	for _, row := range rows {
		if len(row) <= ColTotal {
			continue
		}
		cell := row[ColTotal]
		if cell.Kind == sheet.KindString && IsCommaDecimal(cell.Str) {
			row[ColTotal] = ParseTotalHours(cell)
		}
	}
}

// ParseTotalHours 逗号小数字符串转数值
//
// 数值与空值原样返回；首个逗号替换为小数点后按前缀解析，无法解析时原样返回字符串。
func ParseTotalHours(v sheet.Value) sheet.Value {
	if v.Kind != sheet.KindString || v.Str == "" {
		return v
	}
	s := strings.Replace(v.Str, ",", ".", 1)
	m := leadingFloatRe.FindString(s)
	if m == "" {
		return v
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil {
		return v
	}
	return sheet.Number(n)
}

// FormatTotalHours 总课时展示文本：小数点统一为逗号
func FormatTotalHours(v sheet.Value) string {
	switch v.Kind {
	case sheet.KindNumber:
		return strings.Replace(strconv.FormatFloat(v.Num, 'f', -1, 64), ".", ",", 1)
	case sheet.KindString:
		return strings.ReplaceAll(v.Str, ".", ",")
	default:
		return v.Text()
	}
}
