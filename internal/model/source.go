package model

import (
	"time"

	"github.com/n4clon1/academic-site/pkg/sheet"
)

// HeaderRowCount 源表前 4 行为标题行，不参与分类，导出时原样复制
const HeaderRowCount = 4

// Source 一次加载得到的源表状态
type Source struct {
	FileName  string
	SheetName string
	Rows      []sheet.Row // 全部行（总课时列已规范化）
	Tree      *Tree
	Skipped   int // 未能归类而跳过的数据行数
	LoadedAt  time.Time

	// 方向 ID → 导出时是否补写学科名称；未出现的方向视为 false
	SubjectNameSettings map[int]bool
}

// HeaderRows 前 4 行标题
func (s *Source) HeaderRows() []sheet.Row {
	if len(s.Rows) < HeaderRowCount {
		return s.Rows
	}
	return s.Rows[:HeaderRowCount]
}

// Row 按绝对行号取源行
func (s *Source) Row(index int) (sheet.Row, bool) {
	if index < 0 || index >= len(s.Rows) {
		return nil, false
	}
	return s.Rows[index], true
}

// SubjectNameEnabled 方向是否启用学科名称补写
func (s *Source) SubjectNameEnabled(directionID int) bool {
	return s.SubjectNameSettings[directionID]
}

// ToggleSubjectName 切换学科名称补写设置，返回切换后的值；未记录过的方向切换为 true
func (s *Source) ToggleSubjectName(directionID int) bool {
	if s.SubjectNameSettings == nil {
		s.SubjectNameSettings = make(map[int]bool)
	}
	v, ok := s.SubjectNameSettings[directionID]
	if !ok {
		s.SubjectNameSettings[directionID] = true
		return true
	}
	s.SubjectNameSettings[directionID] = !v
	return !v
}
