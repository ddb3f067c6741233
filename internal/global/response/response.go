package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/config"
)

// 错误码按 HTTP 语义分段：4xxxx 客户端错误，5xxxx 服务端错误
var (
	ErrInvalidRequest  = newError(40001, "请求参数错误")
	ErrUnauthorized    = newError(40100, "请先登录")
	ErrTokenInvalid    = newError(40101, "登录凭证无效")
	ErrInvalidPassword = newError(40102, "用户名或密码错误")
	ErrForbidden       = newError(40300, "没有该资源的操作权限")
	ErrNotFound        = newError(40400, "资源不存在")
	ErrAlreadyExists   = newError(40900, "资源已存在")
	ErrFinished        = newError(40901, "黑客松已结束，该操作已关闭")
	ErrDatabase        = newError(50000, "数据库操作失败")
	ErrInternal        = newError(50001, "服务内部错误")
)

// ResponseBody 统一响应结构
type ResponseBody struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// Success 返回成功响应，code 固定为 200
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, ResponseBody{
		Code: 200,
		Msg:  "ok",
		Data: data,
	})
}

// Fail 返回失败响应，并把错误对象存入 context 供 Sentry 中间件上报
// 原始错误信息仅在 debug 模式下透出给前端
func Fail(c *gin.Context, err error) {
	e, ok := err.(*Error)
	if !ok {
		e = ErrInternal.WithOrigin(err)
	}
	c.Set(ErrorContextKey, e)
	body := ResponseBody{
		Code: e.Code,
		Msg:  e.Message,
	}
	if config.Get().Mode == config.ModeDebug && e.Origin != "" {
		body.Data = gin.H{"origin": e.Origin}
	}
	c.JSON(http.StatusOK, body)
}

// Recovery 捕获 handler panic，返回统一的内部错误响应
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = &Error{Code: ErrInternal.Code, Message: ErrInternal.Message}
		}
		Fail(c, ErrInternal.WithOrigin(err))
		c.Abort()
	}
}
