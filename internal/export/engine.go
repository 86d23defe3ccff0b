package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/n4clon1/academic-site/internal/model"
	"github.com/n4clon1/academic-site/internal/parser"
	"github.com/n4clon1/academic-site/internal/style"
	"github.com/n4clon1/academic-site/pkg/sheet"
)

// ═══════════════════════════════════════════════════════════
// 导出引擎：每位教师一个工作表
// ═══════════════════════════════════════════════════════════
//
// 工作表结构：
//   - 第 1~4 行：源表标题行原样复制
//   - 之后：该教师分配到的源行，按源行号升序
//
// 样式回放：标题行按相同地址（0~3 行 × 0~35 列），数据行按 "目标行 ← 源行" 映射；
// 列宽、行高、合并区域无条件回放。

// ErrNothingToExport 没有任何带分配的教师
var ErrNothingToExport = errors.New("нет данных для экспорта")

// headerStyleWidth 标题行样式回放的列数（比数据列多一列）
const headerStyleWidth = parser.ExportWidth + 1

// Options 导出选项
type Options struct {
	FillSubjectName   bool   // 是否按方向设置补写学科名称
	FallbackSheetName string // 姓名清洗后为空时的工作表名
}

// Sheet 一位教师的导出输入
type Sheet struct {
	Instructor  *model.Instructor
	Assignments []*model.Assignment
}

// SheetSummary 已写出工作表的摘要
type SheetSummary struct {
	Name         string
	InstructorID int64
	Rows         int
}

// Result 导出结果
type Result struct {
	Buffer *bytes.Buffer
	Sheets []SheetSummary
}

// Engine 导出引擎
type Engine struct {
	opts Options
}

// NewEngine 创建导出引擎
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Build 生成工作簿；没有分配的教师被跳过
//
// 全部写入成功后才返回缓冲区，中途失败不产生任何输出。
func (e *Engine) Build(src *model.Source, reg *style.Registry, sheets []Sheet) (*Result, error) {
	if reg == nil {
		reg = style.NewRegistry()
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	replayer := style.NewReplayer(f, reg)
	used := make(map[string]bool)
	result := &Result{}

	for _, s := range sheets {
		if s.Instructor == nil || len(s.Assignments) == 0 {
			continue
		}
		name := uniqueSheetName(SheetName(s.Instructor.Name, e.opts.FallbackSheetName), used)

		// 第一个工作表直接改名，避免与默认的 Sheet1 冲突
		if len(result.Sheets) == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return nil, fmt.Errorf("重命名工作表失败: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("创建工作表 %q 失败: %w", name, err)
		}

		rows := Plan(src, reg, s.Assignments, e.opts.FillSubjectName)
		if err := writeSheet(f, replayer, name, src.HeaderRows(), rows); err != nil {
			return nil, err
		}
		result.Sheets = append(result.Sheets, SheetSummary{
			Name:         name,
			InstructorID: s.Instructor.ID,
			Rows:         len(rows),
		})
	}

	if len(result.Sheets) == 0 {
		return nil, ErrNothingToExport
	}
	f.SetActiveSheet(0)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("写出工作簿失败: %w", err)
	}
	result.Buffer = buf
	return result, nil
}

func writeSheet(f *excelize.File, p *style.Replayer, name string, headers []sheet.Row, rows []PlannedRow) error {
	for i, hr := range headers {
		if err := setRow(f, name, i, hr.Fit(parser.ExportWidth)); err != nil {
			return err
		}
	}
	offset := len(headers)
	for j, r := range rows {
		if err := setRow(f, name, offset+j, r.Cells); err != nil {
			return err
		}
	}

	if err := p.ApplyLayout(name); err != nil {
		return err
	}

	// 标题行：相同地址
	for r := 0; r < len(headers) && r < model.HeaderRowCount; r++ {
		for c := 0; c < headerStyleWidth; c++ {
			addr := sheet.CellName(r, c)
			if err := p.CopyCell(name, addr, addr); err != nil {
				return err
			}
		}
	}
	// 数据行：目标行 ← 源行
	for j, r := range rows {
		for c := 0; c < parser.ExportWidth; c++ {
			if err := p.CopyCell(name, sheet.CellName(offset+j, c), sheet.CellName(r.SourceIndex, c)); err != nil {
				return err
			}
		}
	}
	return nil
}

func setRow(f *excelize.File, name string, rowIndex int, cells sheet.Row) error {
	values := make([]interface{}, len(cells))
	for i, v := range cells {
		values[i] = v.Interface()
	}
	if err := f.SetSheetRow(name, sheet.CellName(rowIndex, 0), &values); err != nil {
		return fmt.Errorf("写入第 %d 行失败: %w", rowIndex+1, err)
	}
	return nil
}
