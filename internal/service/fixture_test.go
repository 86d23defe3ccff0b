package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/n4clon1/academic-site/config"
	"github.com/n4clon1/academic-site/internal/repository"
	"github.com/n4clon1/academic-site/pkg/jwt"
)

// ── 测试辅助 ──

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret-key-0123456789",
			SessionTTL: time.Hour,
		},
		Export: config.ExportConfig{
			DefaultFileName:   "Нагрузка_преподавателей",
			FallbackSheetName: "Преподаватель",
		},
		Feature: config.FeatureConfig{
			InstructorSelection: true,
			SubjectNameSetting:  true,
		},
		Instructors: config.InstructorsConfig{BuiltIn: []string{"Яковлева", "Кареев"}},
	}
}

type testEnv struct {
	cfg  *config.Config
	repo *repository.Repository
	svc  *Service
}

func setupTestService(t *testing.T, mutate func(*config.Config)) *testEnv {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}
	repo := repository.NewRepository(cfg.Auth.SessionTTL)
	svc := NewService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())
	return &testEnv{cfg: cfg, repo: repo, svc: svc}
}

func (e *testEnv) newSession(t *testing.T) string {
	t.Helper()
	resp, err := e.svc.Session.Create(context.Background())
	if err != nil {
		t.Fatalf("创建会话失败: %v", err)
	}
	return resp.SessionID
}

// fixtureWorkbook 源表：
//
//	行 5  院系 ФЭН
//	行 6  学科 Экономика / 38.03.01（研讨 5，总课时 12.5） → 方向 0
//	行 7  分组行（研讨 8，总课时 "10,5"）                 → 方向 0 的分组
//	行 8  续行 38.03.02                                   → 方向 1
//	行 9  学科 Право / 40.03.01                           → 方向 2
func fixtureWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sh := "Sheet1"
	cells := map[string]interface{}{
		"A1":  "Распределение нагрузки",
		"D3":  "Дисциплина",
		"E3":  "Код",
		"AI3": "Итого",
		"D5":  "ФЭН",
		"D6":  "Экономика",
		"E6":  "38.03.01",
		"J6":  5,
		"AI6": 12.5,
		"J7":  8,
		"AI7": "10,5",
		"E8":  "38.03.02",
		"J8":  4,
		"AI8": 20,
		"D9":  "Право",
		"E9":  "40.03.01",
		"AI9": 36,
	}
	for addr, v := range cells {
		if err := f.SetCellValue(sh, addr, v); err != nil {
			t.Fatalf("写入夹具失败: %v", err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		t.Fatalf("创建样式失败: %v", err)
	}
	_ = f.SetCellStyle(sh, "D6", "D6", bold)
	_ = f.MergeCell(sh, "A1", "C1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("写出夹具失败: %v", err)
	}
	return buf.Bytes()
}

// loadedSession 创建会话并加载夹具
func (e *testEnv) loadedSession(t *testing.T) string {
	t.Helper()
	sid := e.newSession(t)
	if _, err := e.svc.Workbook.Load(context.Background(), sid, "load.xlsx", bytes.NewReader(fixtureWorkbook(t))); err != nil {
		t.Fatalf("加载夹具失败: %v", err)
	}
	return sid
}
