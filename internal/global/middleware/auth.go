package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/internal/global/cache"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/response"
)

// TokenContextKey 存放本次请求的原始令牌，登出接口需要用它写黑名单
const TokenContextKey = "token"

// Auth 校验 Bearer 令牌并检查全局角色下限。
// 资源级的权限（所有者、评委）由 handler 内部通过 auth.Require 检查。
func Auth(minRoleID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, response.ErrUnauthorized)
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		payload, valid := jwt.ParseToken(token)
		if !valid {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}

		// 已登出的令牌视为无效
		if cache.IsTokenBlacklisted(c.Request.Context(), token) {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}

		if payload.RoleID < minRoleID {
			response.Fail(c, response.ErrForbidden)
			c.Abort()
			return
		}

		c.Set(jwt.PayloadContextKey, payload)
		c.Set(TokenContextKey, token)
		c.Next()
	}
}
