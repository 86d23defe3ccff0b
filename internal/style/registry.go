package style

import (
	"fmt"
	"math"
	"strings"

	"github.com/mohae/deepcopy"
	"github.com/xuri/excelize/v2"

	"github.com/n4clon1/academic-site/pkg/sheet"
)

// ── 样式 / 格式登记表 ──────────────────────────────────────
//
// 加载时对源表做一次快照：逐单元格记录样式、数字格式、单元格类型，
// 以及列宽、行高、合并区域。样式内容不做解释，按地址原样存取，导出时回放。
// ─────────────────────────────────────────────────────────────

// 表格库在未声明列宽 / 行高时返回的默认值
const (
	defaultColWidth  = 9.140625
	defaultRowHeight = 15.0
)

// Format 数字格式：内置编号或自定义格式串
type Format struct {
	ID   int
	Code string
}

// IsNumeric 是否为真正的数字格式（排除常规与文本格式）
func (f Format) IsNumeric() bool {
	if f.Code != "" {
		return f.Code != "@" && !strings.EqualFold(f.Code, "General")
	}
	return f.ID != 0 && f.ID != 49
}

// Cell 单个单元格的快照
type Cell struct {
	StyleID int // 源工作簿中的样式编号，0 表示无样式
	Style   *excelize.Style
	Format  Format
	Type    excelize.CellType
}

// Merge 合并区域（"A1" 形式的起止地址）
type Merge struct {
	Start string
	End   string
}

// Registry 源表样式快照
type Registry struct {
	cells      map[string]*Cell
	colWidths  map[int]float64
	rowHeights map[int]float64
	merges     []Merge
}

// NewRegistry 创建空登记表
func NewRegistry() *Registry {
	return &Registry{
		cells:      make(map[string]*Cell),
		colWidths:  make(map[int]float64),
		rowHeights: make(map[int]float64),
	}
}

// Capture 从源表抓取快照，替换此前的全部内容
//
// 没有声明范围的空表得到空快照；没有合并 / 列宽 / 行高的表对应项保持为空。
func (r *Registry) Capture(f *excelize.File, sheetName string) error {
	cells := make(map[string]*Cell)
	colWidths := make(map[int]float64)
	rowHeights := make(map[int]float64)
	var merges []Merge

	r0, c0, r1, c1, ok, err := extent(f, sheetName)
	if err != nil {
		return err
	}

	if ok {
		styles := make(map[int]*excelize.Style)
		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				addr := sheet.CellName(row, col)
				cell, err := captureCell(f, sheetName, addr, styles)
				if err != nil {
					return err
				}
				if cell != nil {
					cells[addr] = cell
				}
			}
		}

		for col := c0; col <= c1; col++ {
			w, err := f.GetColWidth(sheetName, sheet.ColumnName(col))
			if err != nil {
				return fmt.Errorf("读取列宽失败: %w", err)
			}
			if !approxEqual(w, defaultColWidth) {
				colWidths[col] = w
			}
		}
		for row := r0; row <= r1; row++ {
			h, err := f.GetRowHeight(sheetName, row+1)
			if err != nil {
				return fmt.Errorf("读取行高失败: %w", err)
			}
			if !approxEqual(h, defaultRowHeight) {
				rowHeights[row] = h
			}
		}
	}

	mcs, err := f.GetMergeCells(sheetName)
	if err != nil {
		return fmt.Errorf("读取合并单元格失败: %w", err)
	}
	for _, mc := range mcs {
		merges = append(merges, Merge{Start: mc.GetStartAxis(), End: mc.GetEndAxis()})
	}

	r.cells = cells
	r.colWidths = colWidths
	r.rowHeights = rowHeights
	r.merges = merges
	return nil
}

func captureCell(f *excelize.File, sheetName, addr string, styles map[int]*excelize.Style) (*Cell, error) {
	styleID, err := f.GetCellStyle(sheetName, addr)
	if err != nil {
		return nil, fmt.Errorf("读取单元格 %s 样式失败: %w", addr, err)
	}
	if styleID == 0 {
		v, err := f.GetCellValue(sheetName, addr, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("读取单元格 %s 失败: %w", addr, err)
		}
		if v == "" {
			return nil, nil
		}
	}

	typ, err := f.GetCellType(sheetName, addr)
	if err != nil {
		return nil, fmt.Errorf("读取单元格 %s 类型失败: %w", addr, err)
	}
	cell := &Cell{StyleID: styleID, Type: typ}
	if styleID == 0 {
		return cell, nil
	}

	st, ok := styles[styleID]
	if !ok {
		st, err = f.GetStyle(styleID)
		if err != nil {
			return nil, fmt.Errorf("读取样式 %d 失败: %w", styleID, err)
		}
		styles[styleID] = st
	}
	// 同一样式编号在快照中各自持有独立副本
	cell.Style = deepcopy.Copy(st).(*excelize.Style)
	cell.Format = Format{ID: st.NumFmt}
	if st.CustomNumFmt != nil {
		cell.Format.Code = *st.CustomNumFmt
	}
	return cell, nil
}

// ── 查询 ──

// StyleFor 返回地址处的样式副本
func (r *Registry) StyleFor(addr string) (*excelize.Style, bool) {
	c, ok := r.cells[addr]
	if !ok || c.Style == nil {
		return nil, false
	}
	return deepcopy.Copy(c.Style).(*excelize.Style), true
}

// FormatFor 返回地址处声明的数字格式
func (r *Registry) FormatFor(addr string) (Format, bool) {
	c, ok := r.cells[addr]
	if !ok || (c.Format.ID == 0 && c.Format.Code == "") {
		return Format{}, false
	}
	return c.Format, true
}

// TypeFor 返回地址处的单元格类型
func (r *Registry) TypeFor(addr string) (excelize.CellType, bool) {
	c, ok := r.cells[addr]
	if !ok {
		return excelize.CellTypeUnset, false
	}
	return c.Type, true
}

// Cell 返回地址处的快照（只读）
func (r *Registry) Cell(addr string) (*Cell, bool) {
	c, ok := r.cells[addr]
	return c, ok
}

// Len 已登记的单元格数
func (r *Registry) Len() int { return len(r.cells) }

// ColumnWidths 列宽（0 起始列号 → 宽度）
func (r *Registry) ColumnWidths() map[int]float64 { return copyFloats(r.colWidths) }

// RowHeights 行高（0 起始行号 → 高度）
func (r *Registry) RowHeights() map[int]float64 { return copyFloats(r.rowHeights) }

// Merges 合并区域
func (r *Registry) Merges() []Merge {
	out := make([]Merge, len(r.merges))
	copy(out, r.merges)
	return out
}

// ── 内部辅助 ──

// extent 扫描范围：声明的工作表范围与实际数据范围的并集
//
// 部分写入端不会维护 dimension 声明，因此以实际数据补足。
func extent(f *excelize.File, sheetName string) (r0, c0, r1, c1 int, ok bool, err error) {
	dim, err := f.GetSheetDimension(sheetName)
	if err != nil {
		return 0, 0, 0, 0, false, fmt.Errorf("读取工作表范围失败: %w", err)
	}
	if dim != "" {
		start, end, found := strings.Cut(dim, ":")
		if !found {
			end = start
		}
		if r0, c0, err = sheet.SplitCellName(start); err != nil {
			return 0, 0, 0, 0, false, fmt.Errorf("解析工作表范围 %q 失败: %w", dim, err)
		}
		if r1, c1, err = sheet.SplitCellName(end); err != nil {
			return 0, 0, 0, 0, false, fmt.Errorf("解析工作表范围 %q 失败: %w", dim, err)
		}
		ok = true
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, 0, 0, 0, false, fmt.Errorf("读取工作表失败: %w", err)
	}
	for r, cols := range rows {
		if len(cols) == 0 {
			continue
		}
		if !ok {
			r0, c0, r1, c1, ok = r, 0, r, len(cols)-1, true
		}
		if r < r0 {
			r0 = r
		}
		if r > r1 {
			r1 = r
		}
		if len(cols)-1 > c1 {
			c1 = len(cols) - 1
		}
		// 按行读取的数据总是从 A 列开始
		c0 = 0
	}
	return r0, c0, r1, c1, ok, nil
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func copyFloats(m map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
