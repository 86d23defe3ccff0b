package repository

import (
	"time"

	"github.com/n4clon1/academic-site/internal/model"
)

// InstructorRepository 教师存储（会话内，内存实现）
//
// 姓名唯一性由调用方检查；存储只保证 ID 唯一并保持创建顺序。
type InstructorRepository interface {
	Create(name string, selected bool) *model.Instructor
	Get(id int64) (*model.Instructor, bool)
	GetByName(name string) (*model.Instructor, bool)
	List() []*model.Instructor
	Delete(id int64) bool
	SetSelected(id int64, selected bool) (*model.Instructor, bool)
	SetAllSelected(selected bool) int
	Len() int
}

type instructorRepo struct {
	clock *idClock
	items []*model.Instructor
}

// NewInstructorRepo 创建 InstructorRepository 实例
func NewInstructorRepo(now func() time.Time) InstructorRepository {
	return &instructorRepo{clock: newIDClock(now)}
}

func (r *instructorRepo) Create(name string, selected bool) *model.Instructor {
	id, at := r.clock.Next()
	in := &model.Instructor{ID: id, Name: name, Selected: selected, CreatedAt: at}
	r.items = append(r.items, in)
	return copyInstructor(in)
}

func (r *instructorRepo) Get(id int64) (*model.Instructor, bool) {
	if i := r.index(id); i >= 0 {
		return copyInstructor(r.items[i]), true
	}
	return nil, false
}

// GetByName 区分大小写的精确匹配
func (r *instructorRepo) GetByName(name string) (*model.Instructor, bool) {
	for _, in := range r.items {
		if in.Name == name {
			return copyInstructor(in), true
		}
	}
	return nil, false
}

func (r *instructorRepo) List() []*model.Instructor {
	out := make([]*model.Instructor, len(r.items))
	for i, in := range r.items {
		out[i] = copyInstructor(in)
	}
	return out
}

func (r *instructorRepo) Delete(id int64) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return true
}

func (r *instructorRepo) SetSelected(id int64, selected bool) (*model.Instructor, bool) {
	i := r.index(id)
	if i < 0 {
		return nil, false
	}
	r.items[i].Selected = selected
	return copyInstructor(r.items[i]), true
}

// SetAllSelected 批量设置导出勾选，返回状态发生变化的教师数
func (r *instructorRepo) SetAllSelected(selected bool) int {
	changed := 0
	for _, in := range r.items {
		if in.Selected != selected {
			in.Selected = selected
			changed++
		}
	}
	return changed
}

func (r *instructorRepo) Len() int { return len(r.items) }

func (r *instructorRepo) index(id int64) int {
	for i, in := range r.items {
		if in.ID == id {
			return i
		}
	}
	return -1
}

func copyInstructor(in *model.Instructor) *model.Instructor {
	c := *in
	return &c
}
