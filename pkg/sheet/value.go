package sheet

import (
	"strconv"
	"strings"
)

// Kind 单元格值类型
type Kind uint8

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
)

// Value 单元格值（字符串 / 数值 / 布尔 / 空）
//
// 与表格库的原始读取结果一一对应：数值单元格保持 float64，
// 其余文本类单元格（共享字符串、内联字符串、公式字符串、日期文本）统一为字符串。
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

// Empty 空值
func Empty() Value { return Value{} }

// String 构造字符串值
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number 构造数值
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool 构造布尔值
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IsEmpty 空单元格或空字符串
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty || (v.Kind == KindString && v.Str == "")
}

// IsBlank 空单元格或仅含空白的字符串
func (v Value) IsBlank() bool {
	return v.IsEmpty() || (v.Kind == KindString && strings.TrimSpace(v.Str) == "")
}

// Present 单元格是否"有值"：非空字符串、非零数值、true
func (v Value) Present() bool {
	switch v.Kind {
	case KindString:
		return v.Str != ""
	case KindNumber:
		return v.Num != 0
	case KindBool:
		return v.Bool
	default:
		return false
	}
}

// Float 尝试取数值；字符串按数字解析，失败返回 false
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Positive 值可解释为大于 0 的数
func (v Value) Positive() bool {
	n, ok := v.Float()
	return ok && n > 0
}

// Text 单元格显示文本
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// Interface 转为写入表格库时使用的原生值；空值写为空字符串
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	default:
		return ""
	}
}

// Row 一行单元格（按列下标稀疏访问，越界视为空）
type Row []Value

// At 按 0 起始的列下标取值，越界返回空值
func (r Row) At(col int) Value {
	if col < 0 || col >= len(r) {
		return Empty()
	}
	return r[col]
}

// Clone 复制一行
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Fit 复制并补齐/截断到恰好 width 列，缺失的列补空字符串
func (r Row) Fit(width int) Row {
	out := make(Row, width)
	for i := 0; i < width; i++ {
		if i < len(r) && r[i].Kind != KindEmpty {
			out[i] = r[i]
			continue
		}
		out[i] = String("")
	}
	return out
}
