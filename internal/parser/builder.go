package parser

import (
	"github.com/n4clon1/academic-site/internal/model"
	"github.com/n4clon1/academic-site/pkg/sheet"
)

// Options 解析选项
type Options struct {
	// TrackSubjectNameSettings 为追加方向显式记录 "不补写学科名称"
	TrackSubjectNameSettings bool
}

// Result 解析结果
type Result struct {
	Tree                *model.Tree
	SubjectNameSettings map[int]bool
	Skipped             int // 被跳过的数据行数
}

// Builder 逐行归约源表，构建院系 → 学科 → 方向（+分组）层级
type Builder struct {
	opts   Options
	state  State
	nextID int
	result *Result
}

// NewBuilder 创建 Builder
func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts: opts,
		result: &Result{
			Tree:                model.NewTree(),
			SubjectNameSettings: make(map[int]bool),
		},
	}
}

// Build 解析整张表（rows 含前 4 行标题）
func Build(rows []sheet.Row, opts Options) *Result {
	b := NewBuilder(opts)
	for i := model.HeaderRowCount; i < len(rows); {
		i += b.Step(rows, i)
	}
	return b.Result()
}

// Result 返回当前累积的解析结果
func (b *Builder) Result() *Result { return b.result }

// State 返回当前解析状态
func (b *Builder) State() State { return b.state }

// Step 处理第 i 行（绝对行号），返回消费的行数（1，或连同分组行共 2）
func (b *Builder) Step(rows []sheet.Row, i int) int {
	row := rows[i]
	tree := b.result.Tree

	switch Classify(b.state, row) {
	case RowFaculty:
		name := row.At(ColName).Text()
		b.state = State{Faculty: name}
		tree.EnsureFaculty(name)
		return 1

	case RowSubject:
		faculty := tree.EnsureFaculty(b.state.Faculty)
		subject := tree.AddSubject(faculty, row.At(ColName).Text(), i)
		b.state.Subject = subject
		d := b.addDirection(subject, row, i)
		return 1 + b.attachSubgroup(d, rows, i)

	case RowContinuation:
		d := b.addDirection(b.state.Subject, row, i)
		if b.opts.TrackSubjectNameSettings {
			b.result.SubjectNameSettings[d.ID] = false
		}
		return 1 + b.attachSubgroup(d, rows, i)

	default:
		b.result.Skipped++
		return 1
	}
}

func (b *Builder) addDirection(subject *model.Subject, row sheet.Row, rowIndex int) *model.Direction {
	d := &model.Direction{
		ID:                  b.nextID,
		Faculty:             b.state.Faculty,
		SubjectName:         subject.Name,
		Code:                row.At(ColCode).Text(),
		Course:              row.At(ColCourse).Text(),
		StudentsCount:       row.At(ColStudents).Text(),
		Groups:              row.At(ColGroups).Text(),
		Autumn:              semesterLoad(row, ColAutumnLectures, ColAutumnSeminars, ColAutumnLabs, ColAutumnForm, ""),
		Spring:              semesterLoad(row, ColSpringLectures, ColSpringSeminars, ColSpringLabs, ColSpringForm, ""),
		Total:               sheet.Number(0),
		PreExamConsultation: textOr(row.At(ColConsultation), ""),
		ExamOrTest:          textOr(row.At(ColExam), ""),
		RowIndex:            rowIndex,
		Row:                 row.Clone(),
	}
	if ColTotal < len(row) {
		d.Total = ParseTotalHours(row[ColTotal])
	}
	b.nextID++
	b.result.Tree.AddDirection(subject, d)
	return d
}

// attachSubgroup 向前看一行，命中分组规则则挂到方向上，返回额外消费的行数
func (b *Builder) attachSubgroup(d *model.Direction, rows []sheet.Row, i int) int {
	if i+1 >= len(rows) {
		return 0
	}
	next := rows[i+1]
	if !IsSubgroupRow(next) {
		return 0
	}

	sg := &model.Subgroup{
		Groups:              textOr(next.At(ColGroups), d.Groups),
		Autumn:              semesterLoad(next, ColAutumnLectures, ColAutumnSeminars, ColAutumnLabs, ColAutumnForm, d.Autumn.Attestation),
		Spring:              semesterLoad(next, ColSpringLectures, ColSpringSeminars, ColSpringLabs, ColSpringForm, d.Spring.Attestation),
		Total:               d.Total,
		PreExamConsultation: textOr(next.At(ColConsultation), ""),
		ExamOrTest:          textOr(next.At(ColExam), ""),
		RowIndex:            i + 1,
		Row:                 next.Clone(),
	}
	if ColTotal < len(next) {
		sg.Total = ParseTotalHours(next[ColTotal])
	}
	d.Subgroup = sg
	return 1
}

func semesterLoad(row sheet.Row, lectures, seminars, labs, form int, fallbackForm string) model.SemesterLoad {
	return model.SemesterLoad{
		Lectures:    hours(row.At(lectures)),
		Seminars:    hours(row.At(seminars)),
		Labs:        hours(row.At(labs)),
		Attestation: textOr(row.At(form), fallbackForm),
	}
}

// hours 课时字段，缺失或非数字记为 0
func hours(v sheet.Value) float64 {
	n, ok := v.Float()
	if !ok {
		return 0
	}
	return n
}

func textOr(v sheet.Value, fallback string) string {
	if !v.Present() {
		return fallback
	}
	return v.Text()
}
