package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"IslandKingdoms/internal/shared/security"
	"IslandKingdoms/internal/shared/transport"
)

const playerIDKey = "player_id"

// Auth 校验 Authorization: Bearer <token> 并把玩家身份放进请求上下文。
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if !strings.HasPrefix(raw, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		claims, err := security.ParseToken(strings.TrimSpace(strings.TrimPrefix(raw, "Bearer ")))
		if err != nil {
			abortUnauthorized(c)
			return
		}
		c.Set(playerIDKey, claims.PlayerID)
		c.Next()
	}
}

// PlayerID 读取 Auth 中间件写入的玩家身份。
func PlayerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(playerIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    transport.Unauthorized,
		"message": "登录已失效",
	})
}
