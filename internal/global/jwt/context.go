package jwt

import (
	"github.com/gin-gonic/gin"
)

// PayloadContextKey 是 Auth 中间件存放解析结果的键
const PayloadContextKey = "payload"

// GetUserPayload 从 gin.Context 中取出当前登录用户
func GetUserPayload(c *gin.Context) (userPayload *Claims, exist bool) {
	payload, _ := c.Get(PayloadContextKey)
	userPayload, exist = payload.(*Claims)
	return
}
