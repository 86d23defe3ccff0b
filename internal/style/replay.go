package style

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/n4clon1/academic-site/pkg/sheet"
)

// Replayer 把登记表中的样式回放到目标工作簿
//
// 同一目标工作簿内，源样式编号只注册一次。
type Replayer struct {
	f     *excelize.File
	reg   *Registry
	cache map[int]int // 源样式编号 → 目标样式编号
}

// NewReplayer 创建针对目标工作簿的回放器
func NewReplayer(f *excelize.File, reg *Registry) *Replayer {
	return &Replayer{f: f, reg: reg, cache: make(map[int]int)}
}

// ApplyLayout 无条件回放列宽、行高与合并区域
//
// 目标表行数与源表不同时，合并区域可能指向不存在的行，按原样保留。
func (p *Replayer) ApplyLayout(sheetName string) error {
	for col, w := range p.reg.colWidths {
		name := sheet.ColumnName(col)
		if err := p.f.SetColWidth(sheetName, name, name, w); err != nil {
			return fmt.Errorf("设置列宽失败: %w", err)
		}
	}
	for row, h := range p.reg.rowHeights {
		if err := p.f.SetRowHeight(sheetName, row+1, h); err != nil {
			return fmt.Errorf("设置行高失败: %w", err)
		}
	}
	for _, m := range p.reg.merges {
		if err := p.f.MergeCell(sheetName, m.Start, m.End); err != nil {
			return fmt.Errorf("合并单元格 %s:%s 失败: %w", m.Start, m.End, err)
		}
	}
	return nil
}

// CopyCell 将源地址的样式（含数字格式）应用到目标地址；源地址无样式时不做任何事
func (p *Replayer) CopyCell(sheetName, dstAddr, srcAddr string) error {
	c, ok := p.reg.cells[srcAddr]
	if !ok || c.Style == nil {
		return nil
	}

	id, ok := p.cache[c.StyleID]
	if !ok {
		st, _ := p.reg.StyleFor(srcAddr)
		var err error
		id, err = p.f.NewStyle(st)
		if err != nil {
			return fmt.Errorf("注册样式失败 (%s): %w", srcAddr, err)
		}
		p.cache[c.StyleID] = id
	}
	if err := p.f.SetCellStyle(sheetName, dstAddr, dstAddr, id); err != nil {
		return fmt.Errorf("设置单元格 %s 样式失败: %w", dstAddr, err)
	}
	return nil
}
