package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/n4clon1/academic-site/config"
	"github.com/n4clon1/academic-site/internal/dto"
	"github.com/n4clon1/academic-site/internal/export"
	"github.com/n4clon1/academic-site/internal/model"
	"github.com/n4clon1/academic-site/internal/parser"
	"github.com/n4clon1/academic-site/internal/repository"
	applogger "github.com/n4clon1/academic-site/pkg/logger"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv; charset=utf-8"
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 工作簿导出：每位参与导出且有分配的教师一个工作表，工作表顺序与教师添加顺序一致
//   - 前置条件按顺序检查：未加载文件 → 无任何分配 → 无勾选教师 → 勾选教师均无分配
//   - 任何一步失败都不产生文件
//   - CSV 报表列出全部分配，便于核对
type ExportService interface {
	ExportWorkbook(ctx context.Context, sessionID string, req *dto.ExportRequest) (*dto.ExportFile, error)
	ExportAssignmentsCSV(ctx context.Context, sessionID string) (*dto.ExportFile, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	engine *export.Engine
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{
		cfg:  cfg,
		repo: repo,
		engine: export.NewEngine(export.Options{
			FillSubjectName:   cfg.Feature.SubjectNameSetting,
			FallbackSheetName: cfg.Export.FallbackSheetName,
		}),
		logger: logger,
	}
}

// ═══════════════════════════════════════════════════════════
// ExportWorkbook 按教师导出 .xlsx
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportWorkbook(ctx context.Context, sessionID string, req *dto.ExportRequest) (*dto.ExportFile, error) {
	var file *dto.ExportFile
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		log := applogger.ForSession(s.logger, sessionID)

		if err := requireLoaded(sess); err != nil {
			return err
		}
		if sess.Assignments.Len() == 0 {
			return ErrNoAssignments
		}

		instructors := s.exportable(sess, req.Scope)
		if len(instructors) == 0 {
			return ErrNoSelectedInstructors
		}

		sheets := make([]export.Sheet, 0, len(instructors))
		for _, in := range instructors {
			as := sess.Assignments.ListByInstructor(in.ID)
			if len(as) == 0 {
				continue
			}
			sheets = append(sheets, export.Sheet{Instructor: in, Assignments: as})
		}
		if len(sheets) == 0 {
			return ErrNoSelectedAssignments
		}

		res, err := s.engine.Build(sess.Source, sess.Styles, sheets)
		if err != nil {
			if errors.Is(err, export.ErrNothingToExport) {
				return ErrNoSelectedAssignments
			}
			log.Error("生成工作簿失败", zap.Error(err))
			return ErrExportGenerateFail
		}

		names := make([]string, len(res.Sheets))
		for i, sh := range res.Sheets {
			names[i] = sh.Name
		}
		file = &dto.ExportFile{
			FileName:    export.FileName(req.FileName, s.cfg.Export.DefaultFileName),
			ContentType: xlsxContentType,
			Data:        res.Buffer.Bytes(),
			Sheets:      names,
		}
		log.Info("导出工作簿",
			zap.String("file", file.FileName),
			zap.Strings("sheets", names),
			zap.Int("bytes", len(file.Data)),
		)
		return nil
	})
	return file, err
}

// exportable 参与导出的教师（按添加顺序）
//
// 关闭勾选功能或 scope=all 时为全部教师，否则为已勾选的教师。
func (s *exportService) exportable(sess *repository.Session, scope string) []*model.Instructor {
	all := sess.Instructors.List()
	if !s.cfg.Feature.InstructorSelection || scope == dto.ExportScopeAll {
		return all
	}
	selected := all[:0]
	for _, in := range all {
		if in.Selected {
			selected = append(selected, in)
		}
	}
	return selected
}

// ═══════════════════════════════════════════════════════════
// ExportAssignmentsCSV 分配清单（CSV）
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportAssignmentsCSV(ctx context.Context, sessionID string) (*dto.ExportFile, error) {
	var file *dto.ExportFile
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		if err := requireLoaded(sess); err != nil {
			return err
		}
		if sess.Assignments.Len() == 0 {
			return ErrNoAssignments
		}

		var rows []*dto.AssignmentReportRow
		for _, in := range sess.Instructors.List() {
			for _, a := range sess.Assignments.ListByInstructor(in.ID) {
				rows = append(rows, s.reportRow(sess.Source, in, a))
			}
		}

		data, err := gocsv.MarshalBytes(&rows)
		if err != nil {
			applogger.ForSession(s.logger, sessionID).Error("生成 CSV 失败", zap.Error(err))
			return ErrExportGenerateFail
		}
		base := strings.TrimSuffix(export.FileName("", s.cfg.Export.DefaultFileName), ".xlsx")
		file = &dto.ExportFile{
			FileName:    base + ".csv",
			ContentType: csvContentType,
			Data:        data,
		}
		return nil
	})
	return file, err
}

func (s *exportService) reportRow(src *model.Source, in *model.Instructor, a *model.Assignment) *dto.AssignmentReportRow {
	row := &dto.AssignmentReportRow{
		Instructor:    in.Name,
		Faculty:       a.FacultyName,
		Subject:       a.SubjectName,
		DirectionCode: a.DirectionCode,
		Subgroup:      a.IsSubgroup,
		AssignedAt:    a.AssignedAt.Format(time.RFC3339),
	}
	d, ok := src.Tree.Direction(a.DirectionID)
	if !ok {
		return row
	}
	row.Course = d.Course
	row.Groups = d.Groups
	row.TotalHours = parser.FormatTotalHours(d.Total)
	if a.IsSubgroup && d.Subgroup != nil {
		row.Groups = d.Subgroup.Groups
		row.TotalHours = parser.FormatTotalHours(d.Subgroup.Total)
	}
	return row
}
