package service

import (
	"bytes"
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/n4clon1/academic-site/config"
	"github.com/n4clon1/academic-site/internal/dto"
	"github.com/n4clon1/academic-site/internal/model"
	"github.com/n4clon1/academic-site/internal/parser"
	"github.com/n4clon1/academic-site/internal/repository"
	"github.com/n4clon1/academic-site/internal/style"
	apperrors "github.com/n4clon1/academic-site/pkg/errors"
	applogger "github.com/n4clon1/academic-site/pkg/logger"
	"github.com/n4clon1/academic-site/pkg/sheet"
)

// WorkbookService 工作簿业务接口
//
// 设计说明：
//   - 只读取第一个工作表，前 4 行为标题
//   - 加载新文件前先同步清空旧文件、样式快照、分配与学科名称设置；教师保留
//   - 读取失败（FileRead）或解析失败（Parse）时会话停留在已清空状态
type WorkbookService interface {
	Load(ctx context.Context, sessionID, fileName string, r io.Reader) (*dto.WorkbookSummary, error)
	Summary(ctx context.Context, sessionID string) (*dto.WorkbookSummary, error)
	Faculties(ctx context.Context, sessionID string) ([]dto.FacultyResponse, error)
	ToggleSubjectName(ctx context.Context, sessionID string, directionID int) (*dto.SubjectNameSettingResponse, error)
}

type workbookService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWorkbookService 创建 WorkbookService 实例
func NewWorkbookService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) WorkbookService {
	return &workbookService{cfg: cfg, repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Load 加载源表
// ═══════════════════════════════════════════════════════════

func (s *workbookService) Load(ctx context.Context, sessionID, fileName string, r io.Reader) (*dto.WorkbookSummary, error) {
	var summary *dto.WorkbookSummary
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		log := applogger.ForSession(s.logger, sessionID)
		sess.Reset()

		data, err := io.ReadAll(r)
		if err != nil {
			log.Warn("读取上传文件失败", zap.Error(err))
			return apperrors.FileRead(err)
		}

		src, reg, err := s.parse(fileName, data)
		if err != nil {
			log.Warn("解析工作簿失败", zap.String("file", fileName), zap.Error(err))
			return apperrors.Parse(err)
		}
		sess.Source = src
		sess.Styles = reg

		if src.Tree.DirectionCount() == 0 {
			log.Warn("未找到院系与学科数据", zap.String("file", fileName))
		}
		log.Info("工作簿已加载",
			zap.String("file", fileName),
			zap.Int("rows", len(src.Rows)),
			zap.Int("directions", src.Tree.DirectionCount()),
			zap.Int("skipped", src.Skipped),
			zap.Int("styled_cells", reg.Len()),
		)
		summary = s.summary(sess)
		return nil
	})
	return summary, err
}

func (s *workbookService) parse(fileName string, data []byte) (*model.Source, *style.Registry, error) {
	f, err := sheet.Open(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheetName, err := sheet.FirstSheet(f)
	if err != nil {
		return nil, nil, err
	}
	rows, err := sheet.ReadRows(f, sheetName)
	if err != nil {
		return nil, nil, err
	}
	parser.NormalizeTotals(rows)

	reg := style.NewRegistry()
	if err := reg.Capture(f, sheetName); err != nil {
		return nil, nil, err
	}

	res := parser.Build(rows, parser.Options{TrackSubjectNameSettings: s.cfg.Feature.SubjectNameSetting})
	return &model.Source{
		FileName:            fileName,
		SheetName:           sheetName,
		Rows:                rows,
		Tree:                res.Tree,
		Skipped:             res.Skipped,
		LoadedAt:            time.Now(),
		SubjectNameSettings: res.SubjectNameSettings,
	}, reg, nil
}

// ────────────────────── Summary ──────────────────────

func (s *workbookService) Summary(ctx context.Context, sessionID string) (*dto.WorkbookSummary, error) {
	var summary *dto.WorkbookSummary
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		if err := requireLoaded(sess); err != nil {
			return err
		}
		summary = s.summary(sess)
		return nil
	})
	return summary, err
}

func (s *workbookService) summary(sess *repository.Session) *dto.WorkbookSummary {
	src := sess.Source
	subgroups := 0
	for _, f := range src.Tree.Faculties {
		for _, sub := range f.Subjects {
			for _, d := range sub.Directions {
				if d.HasSubgroup() {
					subgroups++
				}
			}
		}
	}
	styled := 0
	if sess.Styles != nil {
		styled = sess.Styles.Len()
	}
	return &dto.WorkbookSummary{
		FileName:        src.FileName,
		SheetName:       src.SheetName,
		LoadedAt:        src.LoadedAt.Format(time.RFC3339),
		FacultyCount:    len(src.Tree.Faculties),
		SubjectCount:    src.Tree.SubjectCount(),
		DirectionCount:  src.Tree.DirectionCount(),
		SubgroupCount:   subgroups,
		SkippedRows:     src.Skipped,
		StyledCells:     styled,
		AssignmentCount: sess.Assignments.Len(),
	}
}

// ────────────────────── Faculties ──────────────────────

func (s *workbookService) Faculties(ctx context.Context, sessionID string) ([]dto.FacultyResponse, error) {
	var out []dto.FacultyResponse
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		if err := requireLoaded(sess); err != nil {
			return err
		}
		names := instructorNames(sess)
		out = make([]dto.FacultyResponse, 0, len(sess.Source.Tree.Faculties))
		for _, f := range sess.Source.Tree.Faculties {
			fr := dto.FacultyResponse{Name: f.Name, Subjects: make([]dto.SubjectResponse, 0, len(f.Subjects))}
			for _, sub := range f.Subjects {
				sr := dto.SubjectResponse{Name: sub.Name, RowIndex: sub.RowIndex, Directions: make([]dto.DirectionResponse, 0, len(sub.Directions))}
				for _, d := range sub.Directions {
					sr.Directions = append(sr.Directions, s.toDirectionResponse(sess, d, names))
				}
				fr.Subjects = append(fr.Subjects, sr)
			}
			out = append(out, fr)
		}
		return nil
	})
	return out, err
}

func (s *workbookService) toDirectionResponse(sess *repository.Session, d *model.Direction, names map[int64]string) dto.DirectionResponse {
	var main, sub []dto.AssignmentBrief
	for _, a := range sess.Assignments.ListByDirection(d.ID) {
		brief := dto.AssignmentBrief{ID: a.ID, InstructorID: a.InstructorID, InstructorName: names[a.InstructorID]}
		if a.IsSubgroup {
			sub = append(sub, brief)
		} else {
			main = append(main, brief)
		}
	}

	resp := dto.DirectionResponse{
		ID:                  d.ID,
		Code:                d.Code,
		Course:              d.Course,
		StudentsCount:       d.StudentsCount,
		Groups:              d.Groups,
		Autumn:              toSemesterLoad(d.Autumn),
		Spring:              toSemesterLoad(d.Spring),
		TotalHours:          parser.FormatTotalHours(d.Total),
		PreExamConsultation: d.PreExamConsultation,
		ExamOrTest:          d.ExamOrTest,
		RowIndex:            d.RowIndex,
		HasSubgroup:         d.HasSubgroup(),
		IncludeSubjectName:  s.cfg.Feature.SubjectNameSetting && sess.Source.SubjectNameEnabled(d.ID),
		Assignments:         nonNil(main),
	}
	if sg := d.Subgroup; sg != nil {
		resp.Subgroup = &dto.SubgroupResponse{
			Groups:              sg.Groups,
			Autumn:              toSemesterLoad(sg.Autumn),
			Spring:              toSemesterLoad(sg.Spring),
			TotalHours:          parser.FormatTotalHours(sg.Total),
			PreExamConsultation: sg.PreExamConsultation,
			ExamOrTest:          sg.ExamOrTest,
			RowIndex:            sg.RowIndex,
			Assignments:         nonNil(sub),
		}
	}
	return resp
}

// ────────────────────── ToggleSubjectName ──────────────────────

func (s *workbookService) ToggleSubjectName(ctx context.Context, sessionID string, directionID int) (*dto.SubjectNameSettingResponse, error) {
	if !s.cfg.Feature.SubjectNameSetting {
		return nil, ErrFeatureDisabled
	}
	var resp *dto.SubjectNameSettingResponse
	err := withSession(ctx, s.repo, sessionID, func(sess *repository.Session) error {
		if err := requireLoaded(sess); err != nil {
			return err
		}
		if _, ok := sess.Source.Tree.Direction(directionID); !ok {
			return ErrDirectionNotFound
		}
		enabled := sess.Source.ToggleSubjectName(directionID)
		resp = &dto.SubjectNameSettingResponse{DirectionID: directionID, Enabled: enabled}
		return nil
	})
	return resp, err
}

// ── 辅助函数 ──

func toSemesterLoad(l model.SemesterLoad) dto.SemesterLoad {
	return dto.SemesterLoad{Lectures: l.Lectures, Seminars: l.Seminars, Labs: l.Labs, Attestation: l.Attestation}
}

func instructorNames(sess *repository.Session) map[int64]string {
	list := sess.Instructors.List()
	names := make(map[int64]string, len(list))
	for _, in := range list {
		names[in.ID] = in.Name
	}
	return names
}

func nonNil(b []dto.AssignmentBrief) []dto.AssignmentBrief {
	if b == nil {
		return []dto.AssignmentBrief{}
	}
	return b
}
