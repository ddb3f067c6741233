package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/response"
	"github.com/stretchr/testify/require"
)

// Option 在请求执行前修改测试上下文
type Option func(c *gin.Context)

// WithPayload 模拟 Auth 中间件写入的登录用户
func WithPayload(p jwt.Payload) Option {
	return func(c *gin.Context) {
		c.Set(jwt.PayloadContextKey, &jwt.Claims{Payload: p})
	}
}

// WithParam 设置路由参数，如 :hackathon_id
func WithParam(key, value string) Option {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: key, Value: value})
	}
}

// WithHeader 设置请求头，如携带 Bearer 令牌
func WithHeader(key, value string) Option {
	return func(c *gin.Context) {
		c.Request.Header.Set(key, value)
	}
}

// WithQuery 设置原始查询串，如 "keyword=ana"
func WithQuery(rawQuery string) Option {
	return func(c *gin.Context) {
		c.Request.URL.RawQuery = rawQuery
	}
}

func DoRequest(t *testing.T, handlerFunc gin.HandlerFunc, request any, opts ...Option) (resp response.ResponseBody) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := []byte("{}")
	if request != nil {
		var err error
		body, err = json.Marshal(request)
		require.NoError(t, err)
	}
	c.Request = httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	handlerFunc(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}
