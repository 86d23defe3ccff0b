package dto

// ── 分配模块 DTO ──

// AttachRequest 分配请求
type AttachRequest struct {
	InstructorID int64 `json:"instructor_id" binding:"required"`
	DirectionID  *int  `json:"direction_id"  binding:"required,min=0"`
	IsSubgroup   bool  `json:"is_subgroup"`
}

// AssignmentListRequest 分配列表过滤参数（两者都为空时返回全部）
type AssignmentListRequest struct {
	InstructorID *int64 `form:"instructor_id"`
	DirectionID  *int   `form:"direction_id" binding:"omitempty,min=0"`
}

// AssignmentResponse 分配信息
type AssignmentResponse struct {
	ID             int64  `json:"id"`
	InstructorID   int64  `json:"instructor_id"`
	InstructorName string `json:"instructor_name"`
	DirectionID    int    `json:"direction_id"`
	IsSubgroup     bool   `json:"is_subgroup"`
	SubjectName    string `json:"subject_name"`
	DirectionCode  string `json:"direction_code"`
	FacultyName    string `json:"faculty_name"`
	AssignedAt     string `json:"assigned_at"`
}
