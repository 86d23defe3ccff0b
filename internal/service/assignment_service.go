package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/n4clon1/academic-site/internal/dto"
	"github.com/n4clon1/academic-site/internal/model"
	"github.com/n4clon1/academic-site/internal/repository"
	applogger "github.com/n4clon1/academic-site/pkg/logger"
)

// AssignmentService 分配业务接口
//
// 存储本身不去重；Attach 在写入前完成全部前置检查：
// 已加载文件 → 至少一位教师 → 教师存在 → 方向存在 → 分组存在 → 未重复分配。
type AssignmentService interface {
	Attach(ctx context.Context, sessionID string, req *dto.AttachRequest) (*dto.AssignmentResponse, error)
	Detach(ctx context.Context, sessionID string, id int64) error
	List(ctx context.Context, sessionID string, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── Attach ──────────────────────

func (s *assignmentService) Attach(ctx context.Context, sessionID string, req *dto.AttachRequest) (*dto.AssignmentResponse, error) {
	var resp *dto.AssignmentResponse
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		if err := requireLoaded(sess); err != nil {
			return err
		}
		if sess.Instructors.Len() == 0 {
			return ErrNoInstructors
		}
		in, ok := sess.Instructors.Get(req.InstructorID)
		if !ok {
			return ErrInstructorNotFound
		}
		if req.DirectionID == nil {
			return ErrDirectionNotFound
		}
		d, ok := sess.Source.Tree.Direction(*req.DirectionID)
		if !ok {
			return ErrDirectionNotFound
		}
		if req.IsSubgroup && !d.HasSubgroup() {
			return ErrSubgroupNotFound
		}
		for _, a := range sess.Assignments.ListByInstructor(in.ID) {
			if a.DirectionID == d.ID && a.IsSubgroup == req.IsSubgroup {
				return ErrAlreadyAssigned
			}
		}

		a := sess.Assignments.Attach(repository.AttachParams{
			InstructorID:  in.ID,
			DirectionID:   d.ID,
			IsSubgroup:    req.IsSubgroup,
			SubjectName:   d.SubjectName,
			DirectionCode: d.Code,
			FacultyName:   d.Faculty,
		})
		applogger.ForSession(s.logger, sessionID).Info("分配教师",
			zap.Int64("instructor_id", in.ID),
			zap.Int("direction_id", d.ID),
			zap.Bool("is_subgroup", req.IsSubgroup),
		)
		r := toAssignmentResponse(a, in.Name)
		resp = &r
		return nil
	})
	return resp, err
}

// ────────────────────── Detach ──────────────────────

// Detach 记录不存在时为空操作
func (s *assignmentService) Detach(ctx context.Context, sessionID string, id int64) error {
	return withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		if sess.Assignments.Detach(id) {
			applogger.ForSession(s.logger, sessionID).Info("取消分配", zap.Int64("assignment_id", id))
		}
		return nil
	})
}

// ────────────────────── List ──────────────────────

func (s *assignmentService) List(ctx context.Context, sessionID string, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, error) {
	var out []dto.AssignmentResponse
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		var list []*model.Assignment
		switch {
		case req.InstructorID != nil:
			list = sess.Assignments.ListByInstructor(*req.InstructorID)
		case req.DirectionID != nil:
			list = sess.Assignments.ListByDirection(*req.DirectionID)
		default:
			list = sess.Assignments.All()
		}
		// 两个条件同时给出时取交集
		if req.InstructorID != nil && req.DirectionID != nil {
			filtered := list[:0]
			for _, a := range list {
				if a.DirectionID == *req.DirectionID {
					filtered = append(filtered, a)
				}
			}
			list = filtered
		}

		names := instructorNames(sess)
		out = make([]dto.AssignmentResponse, 0, len(list))
		for _, a := range list {
			out = append(out, toAssignmentResponse(a, names[a.InstructorID]))
		}
		return nil
	})
	return out, err
}

func toAssignmentResponse(a *model.Assignment, instructorName string) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:             a.ID,
		InstructorID:   a.InstructorID,
		InstructorName: instructorName,
		DirectionID:    a.DirectionID,
		IsSubgroup:     a.IsSubgroup,
		SubjectName:    a.SubjectName,
		DirectionCode:  a.DirectionCode,
		FacultyName:    a.FacultyName,
		AssignedAt:     a.AssignedAt.Format(time.RFC3339),
	}
}
