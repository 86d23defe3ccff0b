package parser

import (
	"testing"

	"github.com/n4clon1/academic-site/internal/model"
	"github.com/n4clon1/academic-site/pkg/sheet"
)

// ── 测试辅助 ──

func row(vals ...interface{}) sheet.Row {
	r := make(sheet.Row, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case nil:
			r[i] = sheet.Empty()
		case string:
			r[i] = sheet.String(x)
		case int:
			r[i] = sheet.Number(float64(x))
		case float64:
			r[i] = sheet.Number(x)
		case bool:
			r[i] = sheet.Bool(x)
		}
	}
	return r
}

// wide 构造指定列有值的行
func wide(cells map[int]interface{}) sheet.Row {
	width := 0
	for c := range cells {
		if c+1 > width {
			width = c + 1
		}
	}
	vals := make([]interface{}, width)
	for i := range vals {
		vals[i] = ""
	}
	for c, v := range cells {
		vals[c] = v
	}
	return row(vals...)
}

func headers() []sheet.Row {
	return []sheet.Row{row("Нагрузка"), row(), row("", "", "", "Дисциплина", "Код"), row()}
}

// ── Classify ──

func TestClassify(t *testing.T) {
	subject := &model.Subject{Name: "S"}
	cases := []struct {
		name string
		st   State
		row  sheet.Row
		want RowKind
	}{
		{"院系行", State{}, row("", "", "", "Fac A"), RowFaculty},
		{"院系行（代码为空串）", State{}, row("", "", "", "Fac A", ""), RowFaculty},
		{"无院系时的学科行被跳过", State{}, row("", "", "", "Course", "101"), RowSkip},
		{"学科行", State{Faculty: "F"}, row("", "", "", "Course", "101"), RowSubject},
		{"无学科时的追加方向被跳过", State{Faculty: "F"}, row("", "", "", "", "102"), RowSkip},
		{"追加方向", State{Faculty: "F", Subject: subject}, row("", "", "", "", "102"), RowContinuation},
		{"空行", State{Faculty: "F", Subject: subject}, row(), RowSkip},
		{"数值代码", State{Faculty: "F"}, row("", "", "", "Course", 101), RowSubject},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Classify(c.st, c.row); got != c.want {
				t.Errorf("期望 %s，实际 %s", c.want, got)
			}
		})
	}
}

func TestIsSubgroupRow(t *testing.T) {
	if !IsSubgroupRow(wide(map[int]interface{}{ColAutumnSeminars: 8})) {
		t.Error("秋季研讨 > 0 且无代码应判定为分组行")
	}
	if !IsSubgroupRow(wide(map[int]interface{}{ColCode: "  ", ColSpringSeminars: 4})) {
		t.Error("代码为空白、春季研讨 > 0 应判定为分组行")
	}
	if IsSubgroupRow(wide(map[int]interface{}{ColCode: "103", ColAutumnSeminars: 8})) {
		t.Error("有方向代码时不应判定为分组行")
	}
	if IsSubgroupRow(wide(map[int]interface{}{ColAutumnLectures: 8})) {
		t.Error("研讨课时为 0 时不应判定为分组行")
	}
	if IsSubgroupRow(row()) {
		t.Error("空行不应判定为分组行")
	}
}

// ── Build ──

func TestBuild_SubjectWithSubgroup(t *testing.T) {
	rows := append(headers(),
		row("", "", "", "Fac A"),
		row("", "", "", "Course X", "101", 2, 30, "g1", 10, 5, 0),
		row("", "", "", "", "", nil, nil, "", 0, 8),
	)

	res := Build(rows, Options{})
	tree := res.Tree

	if len(tree.Faculties) != 1 || tree.Faculties[0].Name != "Fac A" {
		t.Fatalf("期望 1 个院系 Fac A，实际 %+v", tree.Faculties)
	}
	subjects := tree.Faculties[0].Subjects
	if len(subjects) != 1 || subjects[0].Name != "Course X" {
		t.Fatalf("期望 1 个学科 Course X，实际 %+v", subjects)
	}
	if subjects[0].RowIndex != 5 {
		t.Errorf("期望学科起始行 5，实际 %d", subjects[0].RowIndex)
	}
	dirs := subjects[0].Directions
	if len(dirs) != 1 {
		t.Fatalf("期望 1 个方向，实际 %d", len(dirs))
	}
	d := dirs[0]
	if d.Code != "101" || d.Autumn.Seminars != 5 || d.Autumn.Lectures != 10 {
		t.Errorf("方向字段不符: %+v", d)
	}
	if d.Course != "2" || d.StudentsCount != "30" || d.Groups != "g1" {
		t.Errorf("年级/人数/分组不符: %+v", d)
	}
	if !d.HasSubgroup() {
		t.Fatal("期望 hasSubgroup=true")
	}
	if d.Subgroup.Autumn.Seminars != 8 {
		t.Errorf("期望分组秋季研讨 8，实际 %v", d.Subgroup.Autumn.Seminars)
	}
	if d.Subgroup.Groups != "g1" {
		t.Errorf("分组未给出时应继承方向分组 g1，实际 %q", d.Subgroup.Groups)
	}
	if d.Subgroup.RowIndex != 6 || d.RowIndex != 5 {
		t.Errorf("期望方向行 5 / 分组行 6，实际 %d / %d", d.RowIndex, d.Subgroup.RowIndex)
	}
	if d.Faculty != "Fac A" || d.SubjectName != "Course X" {
		t.Errorf("冗余字段不符: %q / %q", d.Faculty, d.SubjectName)
	}
}

func TestBuild_SubgroupRowIsConsumed(t *testing.T) {
	// 分组行之后紧跟一行同形态的行：它不应再被当作第二个分组
	rows := append(headers(),
		row("", "", "", "Fac A"),
		row("", "", "", "Course X", "101"),
		wide(map[int]interface{}{ColAutumnSeminars: 8}),
		wide(map[int]interface{}{ColAutumnSeminars: 6}),
		row("", "", "", "", "102"),
	)

	res := Build(rows, Options{})
	dirs := res.Tree.Faculties[0].Subjects[0].Directions
	if len(dirs) != 2 {
		t.Fatalf("期望 2 个方向，实际 %d", len(dirs))
	}
	if dirs[0].Subgroup == nil || dirs[0].Subgroup.Autumn.Seminars != 8 {
		t.Error("首个方向的分组应为紧随其后的一行")
	}
	if res.Skipped != 1 {
		t.Errorf("期望跳过 1 行，实际 %d", res.Skipped)
	}
}

func TestBuild_IDsAcrossFaculties(t *testing.T) {
	rows := append(headers(),
		row("", "", "", "Fac A"),
		row("", "", "", "S1", "101"),
		row("", "", "", "", "102"),
		row(),
		row("", "", "", "Fac B"),
		row("", "", "", "S2", "201"),
		row("", "", "", "S3", "301"),
		row("", "", "", "", "302"),
	)

	res := Build(rows, Options{})
	want := map[string]int{"101": 0, "102": 1, "201": 2, "301": 3, "302": 4}

	got := make(map[string]int)
	for _, f := range res.Tree.Faculties {
		for _, s := range f.Subjects {
			for _, d := range s.Directions {
				got[d.Code] = d.ID
			}
		}
	}
	for code, id := range want {
		if got[code] != id {
			t.Errorf("方向 %s 期望 ID %d，实际 %d", code, id, got[code])
		}
	}
	if res.Tree.DirectionCount() != 5 {
		t.Errorf("期望 5 个方向，实际 %d", res.Tree.DirectionCount())
	}

	d, ok := res.Tree.Direction(4)
	if !ok || d.SubjectName != "S3" || d.Faculty != "Fac B" {
		t.Errorf("追加方向应归属 S3 / Fac B，实际 %+v", d)
	}
}

func TestBuild_FacultyResetsSubject(t *testing.T) {
	rows := append(headers(),
		row("", "", "", "Fac A"),
		row("", "", "", "S1", "101"),
		row("", "", "", "Fac B"),
		row("", "", "", "", "102"), // 新院系下尚无学科，跳过
	)
	res := Build(rows, Options{})
	if res.Tree.DirectionCount() != 1 {
		t.Errorf("期望 1 个方向，实际 %d", res.Tree.DirectionCount())
	}
	if res.Skipped != 1 {
		t.Errorf("期望跳过 1 行，实际 %d", res.Skipped)
	}
}

func TestBuild_RepeatedFacultyName(t *testing.T) {
	rows := append(headers(),
		row("", "", "", "Fac A"),
		row("", "", "", "S1", "101"),
		row("", "", "", "Fac A"),
		row("", "", "", "S2", "102"),
	)
	res := Build(rows, Options{})
	if len(res.Tree.Faculties) != 1 {
		t.Fatalf("同名院系应合并，实际 %d 个", len(res.Tree.Faculties))
	}
	if len(res.Tree.Faculties[0].Subjects) != 2 {
		t.Errorf("期望 2 个学科，实际 %d", len(res.Tree.Faculties[0].Subjects))
	}
}

func TestBuild_SubjectNameSettings(t *testing.T) {
	rows := append(headers(),
		row("", "", "", "Fac A"),
		row("", "", "", "S1", "101"),
		row("", "", "", "", "102"),
	)

	res := Build(rows, Options{TrackSubjectNameSettings: true})
	v, ok := res.SubjectNameSettings[1]
	if !ok || v {
		t.Error("追加方向应显式记录为 false")
	}
	if _, ok := res.SubjectNameSettings[0]; ok {
		t.Error("首个方向不应记录设置")
	}

	res = Build(rows, Options{})
	if len(res.SubjectNameSettings) != 0 {
		t.Error("关闭跟踪时不应记录任何设置")
	}
}

func TestBuild_SubgroupFallbacks(t *testing.T) {
	dir := wide(map[int]interface{}{
		ColName: "S1", ColCode: "101", ColGroups: "g1",
		ColAutumnForm: "зачет", ColSpringForm: "экзамен", ColTotal: "12,5",
	})
	sub := wide(map[int]interface{}{ColSpringSeminars: 4, ColAutumnForm: "зачет с оценкой"})

	rows := append(headers(), row("", "", "", "Fac A"), dir, sub)
	res := Build(rows, Options{})

	d, _ := res.Tree.Direction(0)
	if d.Total.Kind != sheet.KindNumber || d.Total.Num != 12.5 {
		t.Errorf("总课时应解析为 12.5，实际 %+v", d.Total)
	}
	sg := d.Subgroup
	if sg == nil {
		t.Fatal("期望存在分组")
	}
	if sg.Autumn.Attestation != "зачет с оценкой" {
		t.Errorf("分组自身考核形式优先，实际 %q", sg.Autumn.Attestation)
	}
	if sg.Spring.Attestation != "экзамен" {
		t.Errorf("分组缺失考核形式时继承方向，实际 %q", sg.Spring.Attestation)
	}
	if sg.Total.Kind != sheet.KindNumber || sg.Total.Num != 12.5 {
		t.Errorf("分组行过短时总课时继承方向，实际 %+v", sg.Total)
	}
	if sg.Autumn.Lectures != 0 || sg.Spring.Labs != 0 {
		t.Error("缺失课时应为 0")
	}
}

func TestBuild_ShortDirectionRowTotalDefaultsToZero(t *testing.T) {
	rows := append(headers(), row("", "", "", "Fac A"), row("", "", "", "S1", "101"))
	res := Build(rows, Options{})
	d, _ := res.Tree.Direction(0)
	if d.Total.Kind != sheet.KindNumber || d.Total.Num != 0 {
		t.Errorf("行长度不足 35 时总课时应为 0，实际 %+v", d.Total)
	}
}

func TestBuild_HeadersOnly(t *testing.T) {
	res := Build(headers()[:2], Options{})
	if len(res.Tree.Faculties) != 0 || res.Tree.DirectionCount() != 0 {
		t.Error("只有标题行时应得到空树")
	}
}

func TestBuild_VerbatimRowCopy(t *testing.T) {
	src := row("", "", "", "S1", "101", 1)
	rows := append(headers(), row("", "", "", "Fac A"), src)
	res := Build(rows, Options{})
	d, _ := res.Tree.Direction(0)

	src[4] = sheet.String("changed")
	if d.Row.At(4).Str != "101" {
		t.Error("方向应持有原始行的独立副本")
	}
}
