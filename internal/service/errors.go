package service

import (
	apperrors "github.com/n4clon1/academic-site/pkg/errors"
)

// ── 业务错误（均为 Validation 类别，面向用户） ──

var (
	// 会话
	ErrSessionNotFound = apperrors.Validation("Сессия не найдена или истекла")

	// 工作簿
	ErrNoFileLoaded      = apperrors.Validation("Сначала загрузите файл")
	ErrDirectionNotFound = apperrors.Validation("Направление не найдено")
	ErrFeatureDisabled   = apperrors.Validation("Функция отключена")

	// 教师
	ErrEmptyInstructorName   = apperrors.Validation("Введите ФИО преподавателя")
	ErrDuplicateInstructor   = apperrors.Validation("Преподаватель с таким ФИО уже добавлен")
	ErrInstructorNotFound    = apperrors.Validation("Преподаватель не найден")
	ErrUnknownBuiltInTeacher = apperrors.Validation("Выберите преподавателя из списка")

	// 分配
	ErrNoInstructors    = apperrors.Validation("Сначала добавьте преподавателей")
	ErrSubgroupNotFound = apperrors.Validation("У направления нет подгруппы")
	ErrAlreadyAssigned  = apperrors.Validation("Преподаватель уже прикреплен")

	// 导出
	ErrNoAssignments         = apperrors.Validation("Нет прикрепленных преподавателей для экспорта")
	ErrNoSelectedInstructors = apperrors.Validation("Выберите хотя бы одного преподавателя для экспорта")
	ErrNoSelectedAssignments = apperrors.Validation("У выбранных преподавателей нет прикрепленных направлений")
	ErrExportGenerateFail    = apperrors.Validation("Ошибка при экспорте")
)
