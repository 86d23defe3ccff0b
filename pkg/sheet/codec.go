package sheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets 工作簿中没有任何工作表
var ErrNoSheets = errors.New("工作簿中没有工作表")

// Open 从字节流解码工作簿
func Open(r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("解码工作簿失败: %w", err)
	}
	return f, nil
}

// FirstSheet 返回第一个工作表名称
func FirstSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrNoSheets
	}
	return sheets[0], nil
}

// ReadRows 读取整张工作表为行数组
//
// 行内空单元格为空字符串，行尾空单元格不补齐；
// 数值单元格（无类型标记或 t="n"）解析为 float64，布尔单元格解析为 bool，其余保持原始文本。
func ReadRows(f *excelize.File, sheet string) ([]Row, error) {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %q 失败: %w", sheet, err)
	}

	rows := make([]Row, len(raw))
	for r, cols := range raw {
		row := make(Row, len(cols))
		for c, text := range cols {
			if text == "" {
				row[c] = String("")
				continue
			}
			typ, err := f.GetCellType(sheet, CellName(r, c))
			if err != nil {
				return nil, fmt.Errorf("读取单元格类型失败: %w", err)
			}
			row[c] = typedValue(typ, text)
		}
		rows[r] = row
	}
	return rows, nil
}

func typedValue(typ excelize.CellType, text string) Value {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if n, err := strconv.ParseFloat(text, 64); err == nil {
			return Number(n)
		}
		return String(text)
	case excelize.CellTypeBool:
		return Bool(text == "1" || text == "TRUE" || text == "true")
	default:
		return String(text)
	}
}

// ── 单元格地址 ──

// CellName 0 起始的 (row, col) 转为 "A1" 形式地址
func CellName(row, col int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row+1)
	return name
}

// ColumnName 0 起始的列下标转为列名（0 → "A"）
func ColumnName(col int) string {
	name, _ := excelize.ColumnNumberToName(col + 1)
	return name
}

// SplitCellName "A1" 形式地址转为 0 起始的 (row, col)
func SplitCellName(cell string) (int, int, error) {
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return 0, 0, err
	}
	return row - 1, col - 1, nil
}
