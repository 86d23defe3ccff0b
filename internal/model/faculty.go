package model

import "github.com/n4clon1/academic-site/pkg/sheet"

// SemesterLoad 单学期课时：讲课 / 研讨 / 实验 + 考核形式
type SemesterLoad struct {
	Lectures    float64 `json:"lectures"`
	Seminars    float64 `json:"seminars"`
	Labs        float64 `json:"labs"`
	Attestation string  `json:"attestation"`
}

// Subgroup 方向下的分组行（每个方向至多一个）
type Subgroup struct {
	Groups              string       `json:"groups"`
	Autumn              SemesterLoad `json:"autumn"`
	Spring              SemesterLoad `json:"spring"`
	Total               sheet.Value  `json:"-"`
	PreExamConsultation string       `json:"pre_exam_consultation"`
	ExamOrTest          string       `json:"exam_or_test"`
	RowIndex            int          `json:"row_index"`
	Row                 sheet.Row    `json:"-"` // 原始行副本，导出时原样写回
}

// Direction 方向：分配与导出的最小单位
//
// ID 在一次解析内按出现顺序自 0 递增，是分配与导出定位方向的唯一依据。
type Direction struct {
	ID                  int          `json:"id"`
	Faculty             string       `json:"faculty"`
	SubjectName         string       `json:"subject_name"`
	Code                string       `json:"code"`
	Course              string       `json:"course"`
	StudentsCount       string       `json:"students_count"`
	Groups              string       `json:"groups"`
	Autumn              SemesterLoad `json:"autumn"`
	Spring              SemesterLoad `json:"spring"`
	Total               sheet.Value  `json:"-"`
	PreExamConsultation string       `json:"pre_exam_consultation"`
	ExamOrTest          string       `json:"exam_or_test"`
	Subgroup            *Subgroup    `json:"subgroup,omitempty"`
	RowIndex            int          `json:"row_index"`
	Row                 sheet.Row    `json:"-"`
}

// HasSubgroup 是否带分组行
func (d *Direction) HasSubgroup() bool { return d.Subgroup != nil }

// SourceRowIndex 分配目标对应的源行：分组且确有分组时取分组行，否则取方向行
func (d *Direction) SourceRowIndex(isSubgroup bool) int {
	if isSubgroup && d.Subgroup != nil {
		return d.Subgroup.RowIndex
	}
	return d.RowIndex
}

// Subject 学科
type Subject struct {
	Name       string       `json:"name"`
	RowIndex   int          `json:"row_index"`
	Directions []*Direction `json:"directions"`
}

// Faculty 院系，以显示名称为键
type Faculty struct {
	Name     string     `json:"name"`
	Subjects []*Subject `json:"subjects"`
}

// Tree 院系 → 学科 → 方向 层级树
type Tree struct {
	Faculties []*Faculty

	byName      map[string]*Faculty
	byDirection map[int]*Direction
}

// NewTree 创建空树
func NewTree() *Tree {
	return &Tree{
		byName:      make(map[string]*Faculty),
		byDirection: make(map[int]*Direction),
	}
}

// EnsureFaculty 按名称获取院系，不存在则追加
func (t *Tree) EnsureFaculty(name string) *Faculty {
	if f, ok := t.byName[name]; ok {
		return f
	}
	f := &Faculty{Name: name}
	t.byName[name] = f
	t.Faculties = append(t.Faculties, f)
	return f
}

// Faculty 按名称查询院系
func (t *Tree) Faculty(name string) (*Faculty, bool) {
	f, ok := t.byName[name]
	return f, ok
}

// AddSubject 在院系下追加学科
func (t *Tree) AddSubject(faculty *Faculty, name string, rowIndex int) *Subject {
	s := &Subject{Name: name, RowIndex: rowIndex}
	faculty.Subjects = append(faculty.Subjects, s)
	return s
}

// AddDirection 在学科下追加方向并建立 ID 索引
func (t *Tree) AddDirection(subject *Subject, d *Direction) {
	subject.Directions = append(subject.Directions, d)
	t.byDirection[d.ID] = d
}

// Direction 按 ID 查询方向
func (t *Tree) Direction(id int) (*Direction, bool) {
	d, ok := t.byDirection[id]
	return d, ok
}

// DirectionCount 方向总数
func (t *Tree) DirectionCount() int { return len(t.byDirection) }

// SubjectCount 学科总数
func (t *Tree) SubjectCount() int {
	n := 0
	for _, f := range t.Faculties {
		n += len(f.Subjects)
	}
	return n
}
