package tools

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseUintParam 解析路径参数为 uint，非法或缺失时返回 0
func ParseUintParam(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
