package export

import (
	"regexp"
	"sort"
	"strings"

	"github.com/n4clon1/academic-site/internal/model"
	"github.com/n4clon1/academic-site/internal/parser"
	"github.com/n4clon1/academic-site/internal/style"
	"github.com/n4clon1/academic-site/pkg/sheet"
)

// 导出前重新规范化总课时时接受的字符串形态（允许千分位空格）
var totalLikeRe = regexp.MustCompile(`^[\d\s,]+$`)

// PlannedRow 一条待导出的数据行
type PlannedRow struct {
	SourceIndex int       // 源表中的绝对行号，用于回放样式
	DirectionID int
	IsSubgroup  bool
	Cells       sheet.Row // 恰好 parser.ExportWidth 列
}

// Plan 计算一位教师的导出行
//
// 按 (方向, 是否分组) 去重，定位源行，按源行号升序排列，
// 补齐 / 截断列宽，按设置补写学科名称，并在源格式为数字格式时重新规范化总课时。
// 找不到方向或源行的分配被忽略。
func Plan(src *model.Source, reg *style.Registry, assignments []*model.Assignment, fillSubjectName bool) []PlannedRow {
	type pending struct {
		index int
		a     *model.Assignment
	}

	seen := make(map[model.AssignmentKey]bool, len(assignments))
	var list []pending
	for _, a := range assignments {
		key := a.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		d, ok := src.Tree.Direction(a.DirectionID)
		if !ok {
			continue
		}
		list = append(list, pending{index: d.SourceRowIndex(a.IsSubgroup), a: a})
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].index < list[j].index })

	out := make([]PlannedRow, 0, len(list))
	for _, p := range list {
		raw, ok := src.Row(p.index)
		if !ok {
			continue
		}
		cells := raw.Fit(parser.ExportWidth)

		if fillSubjectName && cells[parser.ColName].IsBlank() &&
			src.SubjectNameEnabled(p.a.DirectionID) && p.a.SubjectName != "" {
			cells[parser.ColName] = sheet.String(p.a.SubjectName)
		}

		cells[parser.ColTotal] = renormalizeTotal(reg, p.index, cells[parser.ColTotal])

		out = append(out, PlannedRow{
			SourceIndex: p.index,
			DirectionID: p.a.DirectionID,
			IsSubgroup:  p.a.IsSubgroup,
			Cells:       cells,
		})
	}
	return out
}

func renormalizeTotal(reg *style.Registry, rowIndex int, v sheet.Value) sheet.Value {
	if reg == nil || v.Kind != sheet.KindString || !totalLikeRe.MatchString(v.Str) {
		return v
	}
	fm, ok := reg.FormatFor(sheet.CellName(rowIndex, parser.ColTotal))
	if !ok || !fm.IsNumeric() {
		return v
	}
	n := parser.ParseTotalHours(sheet.String(strings.Join(strings.Fields(v.Str), "")))
	if n.Kind != sheet.KindNumber {
		return v
	}
	return n
}
