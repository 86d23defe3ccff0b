package parser

import (
	"github.com/n4clon1/academic-site/internal/model"
	"github.com/n4clon1/academic-site/pkg/sheet"
)

// RowKind 数据行分类结果
type RowKind int

const (
	RowSkip         RowKind = iota // 不符合任何形态，静默跳过
	RowFaculty                     // 院系标题行
	RowSubject                     // 新学科 + 首个方向
	RowContinuation                // 当前学科的追加方向
)

func (k RowKind) String() string {
	switch k {
	case RowFaculty:
		return "faculty"
	case RowSubject:
		return "subject"
	case RowContinuation:
		return "continuation"
	default:
		return "skip"
	}
}

// State 解析状态：当前院系与当前学科
type State struct {
	Faculty string
	Subject *model.Subject
}

// HasFaculty 是否已进入某个院系
func (s State) HasFaculty() bool { return s.Faculty != "" }

// Classify 根据当前状态判定一行的类别
//
//	名称列有值、代码列为空              → 院系
//	名称列与代码列均有值且已有院系       → 新学科
//	名称列为空、代码列有值且已有院系与学科 → 追加方向
func Classify(st State, row sheet.Row) RowKind {
	name := row.At(ColName).Present()
	code := row.At(ColCode).Present()

	switch {
	case name && !code:
		return RowFaculty
	case name && code && st.HasFaculty():
		return RowSubject
	case !name && code && st.HasFaculty() && st.Subject != nil:
		return RowContinuation
	default:
		return RowSkip
	}
}

// IsSubgroupRow 判断方向行之后的一行是否为其分组行：无方向代码，且任一学期研讨课时大于 0
func IsSubgroupRow(next sheet.Row) bool {
	code := next.At(ColCode)
	noCode := !code.Present() || code.IsBlank()
	seminars := next.At(ColAutumnSeminars).Positive() || next.At(ColSpringSeminars).Positive()
	return noCode && seminars
}
