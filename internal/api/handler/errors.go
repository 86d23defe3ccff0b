package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n4clon1/academic-site/internal/service"
	apperrors "github.com/n4clon1/academic-site/pkg/errors"
	"github.com/n4clon1/academic-site/pkg/response"
)

// 参数校验失败的统一提示
const msgInvalidParams = "Неверные параметры запроса"

// errorMapping 业务错误 → HTTP 状态 + 业务码
type errorMapping struct {
	err    error
	status int
	code   int
}

// 业务码分段：
//
//	110xx 会话
//	120xx 工作簿
//	130xx 教师
//	140xx 分配
//	150xx 导出
var errorMappings = []errorMapping{
	{service.ErrSessionNotFound, http.StatusUnauthorized, 11001},

	{service.ErrNoFileLoaded, http.StatusConflict, 12001},
	{service.ErrDirectionNotFound, http.StatusNotFound, 12004},
	{service.ErrFeatureDisabled, http.StatusForbidden, 12005},

	{service.ErrEmptyInstructorName, http.StatusBadRequest, 13001},
	{service.ErrDuplicateInstructor, http.StatusConflict, 13002},
	{service.ErrInstructorNotFound, http.StatusNotFound, 13003},
	{service.ErrUnknownBuiltInTeacher, http.StatusBadRequest, 13004},

	{service.ErrNoInstructors, http.StatusConflict, 14001},
	{service.ErrSubgroupNotFound, http.StatusBadRequest, 14002},
	{service.ErrAlreadyAssigned, http.StatusConflict, 14003},

	{service.ErrNoAssignments, http.StatusConflict, 15001},
	{service.ErrNoSelectedInstructors, http.StatusConflict, 15002},
	{service.ErrNoSelectedAssignments, http.StatusConflict, 15003},
	{service.ErrExportGenerateFail, http.StatusInternalServerError, 15004},
}

// handleError 统一处理业务错误
//
// 已登记的业务错误按映射表返回；读取 / 解析失败携带底层原因；其余一律 500。
func handleError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			response.Error(c, m.status, m.code, m.err.Error())
			return
		}
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperrors.KindFileRead:
			response.ErrorWithDetails(c, http.StatusBadRequest, 12002, appErr.Message, apperrors.Details(err))
			return
		case apperrors.KindParse:
			response.UnprocessableEntity(c, 12003, appErr.Message, apperrors.Details(err))
			return
		case apperrors.KindValidation:
			response.BadRequest(c, 10001, appErr.Message)
			return
		}
	}

	_ = c.Error(err)
	response.InternalError(c)
}
