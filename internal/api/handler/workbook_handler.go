package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n4clon1/academic-site/internal/service"
	"github.com/n4clon1/academic-site/pkg/response"
)

// WorkbookHandler 工作簿模块 HTTP 处理器
type WorkbookHandler struct {
	workbookSvc service.WorkbookService
}

// NewWorkbookHandler 创建 WorkbookHandler
func NewWorkbookHandler(workbookSvc service.WorkbookService) *WorkbookHandler {
	return &WorkbookHandler{workbookSvc: workbookSvc}
}

// Upload 上传并加载源表
// POST /api/v1/workbook
//
// multipart/form-data, field="file"
func (h *WorkbookHandler) Upload(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Файл слишком большой")
			return
		}
		response.BadRequest(c, 10001, "Выберите файл для загрузки")
		return
	}
	defer file.Close()

	summary, err := h.workbookSvc.Load(c.Request.Context(), sessionID, header.Filename, file)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, summary)
}

// GetSummary 已加载文件的概要
// GET /api/v1/workbook
func (h *WorkbookHandler) GetSummary(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	summary, err := h.workbookSvc.Summary(c.Request.Context(), sessionID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, summary)
}

// ListFaculties 院系 → 学科 → 方向 树
// GET /api/v1/workbook/faculties
func (h *WorkbookHandler) ListFaculties(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	faculties, err := h.workbookSvc.Faculties(c.Request.Context(), sessionID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": faculties})
}

// ToggleSubjectName 切换方向的学科名称补写设置
// POST /api/v1/workbook/directions/:id/subject-name/toggle
func (h *WorkbookHandler) ToggleSubjectName(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	directionID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	result, err := h.workbookSvc.ToggleSubjectName(c.Request.Context(), sessionID, directionID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, result)
}
