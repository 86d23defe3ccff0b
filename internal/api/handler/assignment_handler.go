package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/n4clon1/academic-site/internal/dto"
	"github.com/n4clon1/academic-site/internal/service"
	"github.com/n4clon1/academic-site/pkg/response"
)

// AssignmentHandler 分配模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// ListAssignments 分配列表
// GET /api/v1/assignments?instructor_id=&direction_id=
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, msgInvalidParams)
		return
	}

	list, err := h.assignmentSvc.List(c.Request.Context(), sessionID, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Attach 为教师分配方向或分组
// POST /api/v1/assignments
func (h *AssignmentHandler) Attach(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, msgInvalidParams)
		return
	}

	result, err := h.assignmentSvc.Attach(c.Request.Context(), sessionID, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, result)
}

// Detach 取消分配（记录不存在时同样返回成功）
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Detach(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentSvc.Detach(c.Request.Context(), sessionID, id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}
