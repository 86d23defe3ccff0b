package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/n4clon1/academic-site/pkg/response"
)

// 会话中间件注入的上下文键
const (
	ctxSessionID = "session_id"
	ctxTokenJTI  = "token_jti"
	ctxTokenExp  = "token_exp"
)

// MustGetSessionID 从 Gin 上下文中安全提取 session_id。
// 如果会话中间件未正确注入 session_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetSessionID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxSessionID)
	if !exists {
		response.Unauthorized(c, 10002, "Требуется авторизация")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "Требуется авторизация")
		return "", false
	}
	return s, true
}

// tokenInfo 当前令牌的 jti 与过期时间；缺失时返回零值
func tokenInfo(c *gin.Context) (string, time.Time) {
	jti := c.GetString(ctxTokenJTI)
	exp, _ := c.Get(ctxTokenExp)
	t, _ := exp.(time.Time)
	return jti, t
}

// paramInt64 解析路径参数为 int64，失败时写入 400 响应
func paramInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.BadRequest(c, 10001, "Неверный идентификатор")
		return 0, false
	}
	return v, true
}

// paramInt 解析非负的路径参数为 int，失败时写入 400 响应
func paramInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 0 {
		response.BadRequest(c, 10001, "Неверный идентификатор")
		return 0, false
	}
	return v, true
}
