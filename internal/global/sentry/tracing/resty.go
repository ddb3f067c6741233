package tracing

import (
	"github.com/getsentry/sentry-go"
	"github.com/go-resty/resty/v2"
)

// SetupRestyTracing 给出站 HTTP 客户端挂上 Sentry span 钩子
func SetupRestyTracing(client *resty.Client) {
	threshold := httpSlowThreshold()

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		parent := sentry.SpanFromContext(req.Context())
		if parent == nil {
			return nil
		}
		span := parent.StartChild("http.client")
		span.Description = req.Method + " " + req.URL
		span.SetData("http.request.method", req.Method)
		req.SetHeader("sentry-trace", span.ToSentryTrace())
		req.SetContext(span.Context())
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		span := sentry.SpanFromContext(resp.Request.Context())
		if span == nil {
			return nil
		}
		if threshold > 0 && resp.Time() < threshold {
			span.Sampled = sentry.SampledFalse
		}
		span.SetData("http.response.status_code", resp.StatusCode())
		if resp.IsError() {
			span.Status = sentry.SpanStatusInternalError
		} else {
			span.Status = sentry.SpanStatusOK
		}
		span.Finish()
		return nil
	})
}
