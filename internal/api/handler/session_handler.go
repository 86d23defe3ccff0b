package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/n4clon1/academic-site/internal/service"
	"github.com/n4clon1/academic-site/pkg/response"
)

// SessionHandler 会话模块 HTTP 处理器
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// CreateSession 创建会话并签发令牌
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	result, err := h.sessionSvc.Create(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, result)
}

// CloseSession 丢弃当前会话并吊销令牌
// DELETE /api/v1/sessions/current
func (h *SessionHandler) CloseSession(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	jti, exp := tokenInfo(c)

	var remaining time.Duration
	if !exp.IsZero() {
		remaining = time.Until(exp)
	}
	if err := h.sessionSvc.Close(c.Request.Context(), sessionID, jti, remaining); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}
