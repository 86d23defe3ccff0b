package model

import "time"

// Instructor 教师
//
// ID 取创建时刻的毫秒时间戳（同一会话内保证唯一）；Name 在会话内区分大小写唯一。
type Instructor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Selected  bool      `json:"selected"`
	CreatedAt time.Time `json:"created_at"`
}

// Assignment 教师与方向 / 分组的绑定
//
// SubjectName / DirectionCode / FacultyName 为冗余副本，仅用于展示。
type Assignment struct {
	ID            int64     `json:"id"`
	InstructorID  int64     `json:"instructor_id"`
	DirectionID   int       `json:"direction_id"`
	IsSubgroup    bool      `json:"is_subgroup"`
	SubjectName   string    `json:"subject_name"`
	DirectionCode string    `json:"direction_code"`
	FacultyName   string    `json:"faculty_name"`
	AssignedAt    time.Time `json:"assigned_at"`
}

// AssignmentKey 导出去重键
type AssignmentKey struct {
	DirectionID int
	IsSubgroup  bool
}

// Key 返回去重键
func (a *Assignment) Key() AssignmentKey {
	return AssignmentKey{DirectionID: a.DirectionID, IsSubgroup: a.IsSubgroup}
}
