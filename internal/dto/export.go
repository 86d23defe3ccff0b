package dto

// ── 导出模块 DTO ──

// 导出范围
const (
	ExportScopeAll      = "all"
	ExportScopeSelected = "selected"
)

// ExportRequest 导出参数
type ExportRequest struct {
	FileName string `form:"file_name" binding:"omitempty,max=200"`
	Scope    string `form:"scope"     binding:"omitempty,oneof=all selected"`
}

// ExportFile 导出结果
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
	Sheets      []string
}

// AssignmentReportRow CSV 报表的一行
type AssignmentReportRow struct {
	Instructor    string `csv:"instructor"`
	Faculty       string `csv:"faculty"`
	Subject       string `csv:"subject"`
	DirectionCode string `csv:"direction_code"`
	Course        string `csv:"course"`
	Subgroup      bool   `csv:"subgroup"`
	Groups        string `csv:"groups"`
	TotalHours    string `csv:"total_hours"`
	AssignedAt    string `csv:"assigned_at"`
}
