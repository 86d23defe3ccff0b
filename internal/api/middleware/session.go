package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/n4clon1/academic-site/pkg/jwt"
	"github.com/n4clon1/academic-site/pkg/redis"
	"github.com/n4clon1/academic-site/pkg/response"
)

// SessionAuth 会话令牌认证中间件
// 从 Authorization: Bearer <token> 中提取并验证会话令牌，注入 session_id / token_jti / token_exp
// rdb 为 nil 或 Redis 出错时跳过吊销检查（降级放行）
func SessionAuth(jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "Требуется авторизация")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "Неверный формат заголовка авторизации")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Сессия недействительна или истекла")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Warn("检查令牌吊销失败，降级放行", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, 10002, "Сессия завершена")
				c.Abort()
				return
			}
		}

		c.Set("session_id", claims.SessionID)
		c.Set("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_exp", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}
