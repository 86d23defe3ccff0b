package dto

// ── 工作簿模块 DTO ──

// WorkbookSummary 已加载文件的概要
type WorkbookSummary struct {
	FileName        string `json:"file_name"`
	SheetName       string `json:"sheet_name"`
	LoadedAt        string `json:"loaded_at"`
	FacultyCount    int    `json:"faculty_count"`
	SubjectCount    int    `json:"subject_count"`
	DirectionCount  int    `json:"direction_count"`
	SubgroupCount   int    `json:"subgroup_count"`
	SkippedRows     int    `json:"skipped_rows"`
	StyledCells     int    `json:"styled_cells"`
	AssignmentCount int    `json:"assignment_count"`
}

// SemesterLoad 单学期课时
type SemesterLoad struct {
	Lectures    float64 `json:"lectures"`
	Seminars    float64 `json:"seminars"`
	Labs        float64 `json:"labs"`
	Attestation string  `json:"attestation"`
}

// AssignmentBrief 方向 / 分组上挂着的分配
type AssignmentBrief struct {
	ID             int64  `json:"id"`
	InstructorID   int64  `json:"instructor_id"`
	InstructorName string `json:"instructor_name"`
}

// SubgroupResponse 分组
type SubgroupResponse struct {
	Groups              string            `json:"groups"`
	Autumn              SemesterLoad      `json:"autumn"`
	Spring              SemesterLoad      `json:"spring"`
	TotalHours          string            `json:"total_hours"`
	PreExamConsultation string            `json:"pre_exam_consultation"`
	ExamOrTest          string            `json:"exam_or_test"`
	RowIndex            int               `json:"row_index"`
	Assignments         []AssignmentBrief `json:"assignments"`
}

// DirectionResponse 方向
type DirectionResponse struct {
	ID                  int               `json:"id"`
	Code                string            `json:"code"`
	Course              string            `json:"course"`
	StudentsCount       string            `json:"students_count"`
	Groups              string            `json:"groups"`
	Autumn              SemesterLoad      `json:"autumn"`
	Spring              SemesterLoad      `json:"spring"`
	TotalHours          string            `json:"total_hours"` // 逗号小数
	PreExamConsultation string            `json:"pre_exam_consultation"`
	ExamOrTest          string            `json:"exam_or_test"`
	RowIndex            int               `json:"row_index"`
	HasSubgroup         bool              `json:"has_subgroup"`
	IncludeSubjectName  bool              `json:"include_subject_name"`
	Subgroup            *SubgroupResponse `json:"subgroup,omitempty"`
	Assignments         []AssignmentBrief `json:"assignments"`
}

// SubjectResponse 学科
type SubjectResponse struct {
	Name       string              `json:"name"`
	RowIndex   int                 `json:"row_index"`
	Directions []DirectionResponse `json:"directions"`
}

// FacultyResponse 院系
type FacultyResponse struct {
	Name     string            `json:"name"`
	Subjects []SubjectResponse `json:"subjects"`
}

// SubjectNameSettingResponse 学科名称补写设置
type SubjectNameSettingResponse struct {
	DirectionID int  `json:"direction_id"`
	Enabled     bool `json:"enabled"`
}
