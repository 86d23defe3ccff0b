package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/n4clon1/academic-site/internal/model"
	"github.com/n4clon1/academic-site/internal/style"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("session not found")

// Session 一个用户的全部工作状态
//
// 同一会话上的操作必须持有 Lock，保证加载、分配与导出互不交错。
type Session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time

	Source      *model.Source   // 未加载文件时为 nil
	Styles      *style.Registry // 与 Source 同时替换
	Instructors InstructorRepository
	Assignments AssignmentRepository

	lastAccess time.Time
}

// Lock 独占会话
func (s *Session) Lock() { s.mu.Lock() }

// Unlock 释放会话
func (s *Session) Unlock() { s.mu.Unlock() }

// Loaded 是否已加载文件
func (s *Session) Loaded() bool { return s.Source != nil }

// Reset 丢弃已加载的文件、样式快照与全部分配；教师保留
func (s *Session) Reset() {
	s.Source = nil
	s.Styles = nil
	s.Assignments.Reset()
}

// RemoveInstructor 删除教师及引用该教师的全部分配，返回删除的分配数
func (s *Session) RemoveInstructor(id int64) (int, bool) {
	if !s.Instructors.Delete(id) {
		return 0, false
	}
	return s.Assignments.RemoveByInstructor(id), true
}

// SessionRepository 会话存储
type SessionRepository interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Sweep(ctx context.Context) int
	Count() int
}

type sessionRepo struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*Session
}

// NewSessionRepo 创建内存会话存储；ttl <= 0 表示永不过期
func NewSessionRepo(ttl time.Duration, now func() time.Time) SessionRepository {
	if now == nil {
		now = time.Now
	}
	return &sessionRepo{ttl: ttl, now: now, sessions: make(map[string]*Session)}
}

func (r *sessionRepo) Create(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := r.now()
	s := &Session{
		ID:          uuid.NewString(),
		CreatedAt:   t,
		Instructors: NewInstructorRepo(r.now),
		Assignments: NewAssignmentRepo(r.now),
		lastAccess:  t,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s, nil
}

// Get 取会话并刷新最近访问时间；闲置超过 ttl 的会话在此被回收
func (r *sessionRepo) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	t := r.now()
	if r.expired(s, t) {
		delete(r.sessions, id)
		return nil, ErrSessionNotFound
	}
	s.lastAccess = t
	return s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Sweep 回收全部过期会话，返回回收数
func (r *sessionRepo) Sweep(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.now()
	n := 0
	for id, s := range r.sessions {
		if ctx.Err() != nil {
			break
		}
		if r.expired(s, t) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *sessionRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *sessionRepo) expired(s *Session, t time.Time) bool {
	return r.ttl > 0 && t.Sub(s.lastAccess) > r.ttl
}
