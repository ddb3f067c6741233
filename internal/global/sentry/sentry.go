package sentry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/config"
	"github.com/raducarabat/hackcontrol/internal/global/response"
)

// CodedError 带错误码的错误，用于判断是否需要上报
type CodedError interface {
	error
	GetCode() int32
}

// Init 初始化 Sentry SDK，未配置 DSN 时为空操作
func Init() error {
	cfg := config.Get()
	if cfg.Sentry.Dsn == "" {
		return nil
	}

	tracesSampleRate := cfg.Sentry.SampleRate
	if tracesSampleRate <= 0 {
		tracesSampleRate = 1.0
	}

	environment := cfg.Sentry.Environment
	if environment == "" {
		environment = string(cfg.Mode)
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.Dsn,
		Environment:      environment,
		Release:          "hackcontrol@1.0.0",
		SampleRate:       1.0, // 错误事件全量上报
		EnableTracing:    true,
		TracesSampleRate: tracesSampleRate,
		EnableLogs:       true,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	return nil
}

// Middleware 返回 Sentry Gin 中间件，DSN 未配置时直接放行
func Middleware() gin.HandlerFunc {
	if config.Get().Sentry.Dsn == "" {
		return func(c *gin.Context) { c.Next() }
	}
	return sentrygin.New(sentrygin.Options{
		Repanic:         true, // panic 交给后面的 Recovery 中间件处理
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// ReportCodedErrors 请求结束后检查 handler 写入的业务错误，
// 服务端错误（5xxxx）作为事件上报
func ReportCodedErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		v, exists := c.Get(response.ErrorContextKey)
		if !exists {
			return
		}
		coded, ok := v.(CodedError)
		if !ok || coded.GetCode() < 50000 {
			return
		}
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(coded)
		}
	}
}

// Flush 进程退出前冲刷未发送的事件
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
