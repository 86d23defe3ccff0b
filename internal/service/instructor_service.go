package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/n4clon1/academic-site/config"
	"github.com/n4clon1/academic-site/internal/dto"
	"github.com/n4clon1/academic-site/internal/model"
	"github.com/n4clon1/academic-site/internal/repository"
	applogger "github.com/n4clon1/academic-site/pkg/logger"
)

// InstructorService 教师业务接口
//
// 设计说明：
//   - 姓名去首尾空白后区分大小写唯一
//   - 新教师默认勾选导出
//   - 删除教师时级联删除其全部分配
//   - 关闭 feature.instructor_selection 时勾选相关操作返回 ErrFeatureDisabled
type InstructorService interface {
	List(ctx context.Context, sessionID string) ([]dto.InstructorResponse, error)
	Add(ctx context.Context, sessionID string, req *dto.CreateInstructorRequest) (*dto.InstructorResponse, error)
	ListBuiltIn(ctx context.Context, sessionID string) ([]dto.BuiltInInstructorResponse, error)
	AddBuiltIn(ctx context.Context, sessionID string, req *dto.AddBuiltInInstructorRequest) (*dto.InstructorResponse, error)
	Remove(ctx context.Context, sessionID string, id int64) (*dto.RemoveInstructorResponse, error)
	ToggleSelected(ctx context.Context, sessionID string, id int64) (*dto.InstructorResponse, error)
	SetAllSelected(ctx context.Context, sessionID string, selected bool) (*dto.CountResponse, error)
}

type instructorService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewInstructorService 创建 InstructorService 实例
func NewInstructorService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) InstructorService {
	return &instructorService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *instructorService) List(ctx context.Context, sessionID string) ([]dto.InstructorResponse, error) {
	var out []dto.InstructorResponse
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		list := sess.Instructors.List()
		out = make([]dto.InstructorResponse, 0, len(list))
		for _, in := range list {
			out = append(out, s.toResponse(sess, in))
		}
		return nil
	})
	return out, err
}

// ────────────────────── Add ──────────────────────

func (s *instructorService) Add(ctx context.Context, sessionID string, req *dto.CreateInstructorRequest) (*dto.InstructorResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyInstructorName
	}
	return s.create(ctx, sessionID, name)
}

func (s *instructorService) create(ctx context.Context, sessionID, name string) (*dto.InstructorResponse, error) {
	var resp *dto.InstructorResponse
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		if _, exists := sess.Instructors.GetByName(name); exists {
			return ErrDuplicateInstructor
		}
		in := sess.Instructors.Create(name, true)
		applogger.ForSession(s.logger, sessionID).Info("添加教师",
			zap.Int64("instructor_id", in.ID), zap.String("name", in.Name))
		r := s.toResponse(sess, in)
		resp = &r
		return nil
	})
	return resp, err
}

// ────────────────────── 内置名单 ──────────────────────

func (s *instructorService) ListBuiltIn(ctx context.Context, sessionID string) ([]dto.BuiltInInstructorResponse, error) {
	var out []dto.BuiltInInstructorResponse
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		out = make([]dto.BuiltInInstructorResponse, 0, len(s.cfg.Instructors.BuiltIn))
		for _, name := range s.cfg.Instructors.BuiltIn {
			_, added := sess.Instructors.GetByName(name)
			out = append(out, dto.BuiltInInstructorResponse{Name: name, Added: added})
		}
		return nil
	})
	return out, err
}

func (s *instructorService) AddBuiltIn(ctx context.Context, sessionID string, req *dto.AddBuiltInInstructorRequest) (*dto.InstructorResponse, error) {
	name := strings.TrimSpace(req.Name)
	if !s.isBuiltIn(name) {
		return nil, ErrUnknownBuiltInTeacher
	}
	return s.create(ctx, sessionID, name)
}

func (s *instructorService) isBuiltIn(name string) bool {
	if name == "" {
		return false
	}
	for _, n := range s.cfg.Instructors.BuiltIn {
		if n == name {
			return true
		}
	}
	return false
}

// ────────────────────── Remove ──────────────────────

func (s *instructorService) Remove(ctx context.Context, sessionID string, id int64) (*dto.RemoveInstructorResponse, error) {
	var resp *dto.RemoveInstructorResponse
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		removed, ok := sess.RemoveInstructor(id)
		if !ok {
			return ErrInstructorNotFound
		}
		applogger.ForSession(s.logger, sessionID).Info("删除教师",
			zap.Int64("instructor_id", id), zap.Int("removed_assignments", removed))
		resp = &dto.RemoveInstructorResponse{ID: id, RemovedAssignments: removed}
		return nil
	})
	return resp, err
}

// ────────────────────── 导出勾选 ──────────────────────

func (s *instructorService) ToggleSelected(ctx context.Context, sessionID string, id int64) (*dto.InstructorResponse, error) {
	if !s.cfg.Feature.InstructorSelection {
		return nil, ErrFeatureDisabled
	}
	var resp *dto.InstructorResponse
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		in, ok := sess.Instructors.Get(id)
		if !ok {
			return ErrInstructorNotFound
		}
		in, _ = sess.Instructors.SetSelected(id, !in.Selected)
		r := s.toResponse(sess, in)
		resp = &r
		return nil
	})
	return resp, err
}

func (s *instructorService) SetAllSelected(ctx context.Context, sessionID string, selected bool) (*dto.CountResponse, error) {
	if !s.cfg.Feature.InstructorSelection {
		return nil, ErrFeatureDisabled
	}
	var resp *dto.CountResponse
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		resp = &dto.CountResponse{Count: sess.Instructors.SetAllSelected(selected)}
		return nil
	})
	return resp, err
}

// ── 辅助函数 ──

// toResponse 附带方向数与分组数（按分配记录计数，不去重）
func (s *instructorService) toResponse(sess *repository.Session, in *model.Instructor) dto.InstructorResponse {
	resp := dto.InstructorResponse{
		ID:        in.ID,
		Name:      in.Name,
		Selected:  in.Selected || !s.cfg.Feature.InstructorSelection,
		CreatedAt: in.CreatedAt.Format(time.RFC3339),
	}
	for _, a := range sess.Assignments.ListByInstructor(in.ID) {
		if a.IsSubgroup {
			resp.SubgroupCount++
		} else {
			resp.DirectionCount++
		}
	}
	return resp
}
