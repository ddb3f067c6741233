package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/raducarabat/hackcontrol/internal/global/sentry/tracing"
)

var Client *resty.Client

func Init() {
	Client = resty.New().SetTimeout(10 * time.Second)

	if tracing.IsEnabled() {
		tracing.SetupRestyTracing(Client)
	}
}

// ProbeURL 对作品链接做一次 HEAD 探活，只返回是否可达，不阻断业务流程
func ProbeURL(ctx context.Context, url string) bool {
	if Client == nil {
		return true
	}
	resp, err := Client.R().SetContext(ctx).Head(url)
	if err != nil {
		return false
	}
	return !resp.IsError()
}
