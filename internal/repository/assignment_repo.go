package repository

import (
	"time"

	"github.com/n4clon1/academic-site/internal/model"
)

// AttachParams 新建分配所需字段
type AttachParams struct {
	InstructorID  int64
	DirectionID   int
	IsSubgroup    bool
	SubjectName   string
	DirectionCode string
	FacultyName   string
}

// AssignmentRepository 分配存储（会话内，内存实现）
//
// Attach 无条件追加，同一 (教师, 方向, 是否分组) 可以出现多次；
// 重复检查属于调用方约定，由 service 层负责。
type AssignmentRepository interface {
	Attach(p AttachParams) *model.Assignment
	Detach(id int64) bool
	Get(id int64) (*model.Assignment, bool)
	ListByInstructor(instructorID int64) []*model.Assignment
	ListByDirection(directionID int) []*model.Assignment
	RemoveByInstructor(instructorID int64) int
	All() []*model.Assignment
	Len() int
	Reset()
}

type assignmentRepo struct {
	clock *idClock
	items []*model.Assignment
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(now func() time.Time) AssignmentRepository {
	return &assignmentRepo{clock: newIDClock(now)}
}

func (r *assignmentRepo) Attach(p AttachParams) *model.Assignment {
	id, at := r.clock.Next()
	a := &model.Assignment{
		ID:            id,
		InstructorID:  p.InstructorID,
		DirectionID:   p.DirectionID,
		IsSubgroup:    p.IsSubgroup,
		SubjectName:   p.SubjectName,
		DirectionCode: p.DirectionCode,
		FacultyName:   p.FacultyName,
		AssignedAt:    at,
	}
	r.items = append(r.items, a)
	return copyAssignment(a)
}

// Detach 不存在时为空操作，返回是否删除了记录
func (r *assignmentRepo) Detach(id int64) bool {
	for i, a := range r.items {
		if a.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

func (r *assignmentRepo) Get(id int64) (*model.Assignment, bool) {
	for _, a := range r.items {
		if a.ID == id {
			return copyAssignment(a), true
		}
	}
	return nil, false
}

func (r *assignmentRepo) ListByInstructor(instructorID int64) []*model.Assignment {
	return r.filter(func(a *model.Assignment) bool { return a.InstructorID == instructorID })
}

func (r *assignmentRepo) ListByDirection(directionID int) []*model.Assignment {
	return r.filter(func(a *model.Assignment) bool { return a.DirectionID == directionID })
}

// RemoveByInstructor 删除引用该教师的全部分配，返回删除数
func (r *assignmentRepo) RemoveByInstructor(instructorID int64) int {
	kept := r.items[:0]
	removed := 0
	for _, a := range r.items {
		if a.InstructorID == instructorID {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	// 释放被删除元素的引用
	for i := len(kept); i < len(r.items); i++ {
		r.items[i] = nil
	}
	r.items = kept
	return removed
}

func (r *assignmentRepo) All() []*model.Assignment {
	return r.filter(func(*model.Assignment) bool { return true })
}

func (r *assignmentRepo) Len() int { return len(r.items) }

func (r *assignmentRepo) Reset() { r.items = nil }

func (r *assignmentRepo) filter(keep func(*model.Assignment) bool) []*model.Assignment {
	var out []*model.Assignment
	for _, a := range r.items {
		if keep(a) {
			out = append(out, copyAssignment(a))
		}
	}
	return out
}

func copyAssignment(a *model.Assignment) *model.Assignment {
	c := *a
	return &c
}
