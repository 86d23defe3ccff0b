package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/n4clon1/academic-site/internal/dto"
	"github.com/n4clon1/academic-site/internal/service"
	"github.com/n4clon1/academic-site/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWorkbook 按教师导出 .xlsx
// GET /api/v1/export/workbook?file_name=&scope=all|selected
func (h *ExportHandler) ExportWorkbook(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, msgInvalidParams)
		return
	}

	file, err := h.exportSvc.ExportWorkbook(c.Request.Context(), sessionID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	response.Attachment(c, file.FileName, file.ContentType, file.Data)
}

// ExportAssignmentsCSV 分配清单 CSV
// GET /api/v1/export/assignments.csv
func (h *ExportHandler) ExportAssignmentsCSV(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	file, err := h.exportSvc.ExportAssignmentsCSV(c.Request.Context(), sessionID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	response.Attachment(c, file.FileName, file.ContentType, file.Data)
}
