package dto

// ── 教师模块 DTO ──

// CreateInstructorRequest 添加教师请求
type CreateInstructorRequest struct {
	Name string `json:"name" binding:"required,notblank,max=200"`
}

// AddBuiltInInstructorRequest 从内置名单添加教师
type AddBuiltInInstructorRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

// SetSelectionRequest 批量勾选 / 取消勾选
type SetSelectionRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

// InstructorResponse 教师信息
type InstructorResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Selected       bool   `json:"selected"`
	CreatedAt      string `json:"created_at"`
	DirectionCount int    `json:"direction_count"`
	SubgroupCount  int    `json:"subgroup_count"`
}

// BuiltInInstructorResponse 内置名单条目
type BuiltInInstructorResponse struct {
	Name  string `json:"name"`
	Added bool   `json:"added"`
}

// RemoveInstructorResponse 删除教师结果
type RemoveInstructorResponse struct {
	ID                 int64 `json:"id"`
	RemovedAssignments int   `json:"removed_assignments"`
}
