package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/n4clon1/academic-site/internal/dto"
	"github.com/n4clon1/academic-site/internal/service"
	"github.com/n4clon1/academic-site/pkg/response"
)

// InstructorHandler 教师模块 HTTP 处理器
type InstructorHandler struct {
	instructorSvc service.InstructorService
}

// NewInstructorHandler 创建 InstructorHandler
func NewInstructorHandler(instructorSvc service.InstructorService) *InstructorHandler {
	return &InstructorHandler{instructorSvc: instructorSvc}
}

// ListInstructors 教师列表（按添加顺序）
// GET /api/v1/instructors
func (h *InstructorHandler) ListInstructors(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	list, err := h.instructorSvc.List(c.Request.Context(), sessionID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// CreateInstructor 添加教师
// POST /api/v1/instructors
func (h *InstructorHandler) CreateInstructor(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 空白姓名返回专门的提示
		if failedOn(err, "required", "notblank") {
			response.BadRequest(c, 13001, service.ErrEmptyInstructorName.Error())
			return
		}
		response.BadRequest(c, 10001, msgInvalidParams)
		return
	}

	result, err := h.instructorSvc.Add(c.Request.Context(), sessionID, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, result)
}

// ListBuiltIn 内置教师名单
// GET /api/v1/instructors/built-in
func (h *InstructorHandler) ListBuiltIn(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	list, err := h.instructorSvc.ListBuiltIn(c.Request.Context(), sessionID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// AddBuiltIn 从内置名单添加教师
// POST /api/v1/instructors/built-in
func (h *InstructorHandler) AddBuiltIn(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.AddBuiltInInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if failedOn(err, "required", "notblank") {
			response.BadRequest(c, 13004, service.ErrUnknownBuiltInTeacher.Error())
			return
		}
		response.BadRequest(c, 10001, msgInvalidParams)
		return
	}

	result, err := h.instructorSvc.AddBuiltIn(c.Request.Context(), sessionID, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, result)
}

// DeleteInstructor 删除教师（级联删除其分配）
// DELETE /api/v1/instructors/:id
func (h *InstructorHandler) DeleteInstructor(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	result, err := h.instructorSvc.Remove(c.Request.Context(), sessionID, id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, result)
}

// ToggleSelection 切换教师的导出勾选
// POST /api/v1/instructors/:id/selection/toggle
func (h *InstructorHandler) ToggleSelection(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	result, err := h.instructorSvc.ToggleSelected(c.Request.Context(), sessionID, id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, result)
}

// SetSelection 全部勾选 / 全部取消
// POST /api/v1/instructors/selection
func (h *InstructorHandler) SetSelection(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.SetSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, msgInvalidParams)
		return
	}

	result, err := h.instructorSvc.SetAllSelected(c.Request.Context(), sessionID, *req.Selected)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, result)
}
