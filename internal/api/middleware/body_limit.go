package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n4clon1/academic-site/pkg/response"
)

// BodyLimit 请求体大小限制中间件（用于文件上传路由）
// maxBytes: 允许的最大请求体字节数；声明的 Content-Length 超限时直接拒绝
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Файл слишком большой")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		// 处理器未写响应而把错误留在上下文中时补写 413
		if c.Writer.Written() {
			return
		}
		for _, err := range c.Errors {
			var tooLarge *http.MaxBytesError
			if errors.As(err.Err, &tooLarge) {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Файл слишком большой")
				return
			}
		}
	}
}
