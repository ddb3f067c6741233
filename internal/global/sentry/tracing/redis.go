package tracing

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
)

// RedisHook 实现 redis.Hook 接口，把 Redis 命令记录为 Sentry span
type RedisHook struct {
	slowThreshold time.Duration
}

func NewRedisHook() *RedisHook {
	return &RedisHook{slowThreshold: redisSlowThreshold()}
}

func (h *RedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *RedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		parent := sentry.SpanFromContext(ctx)
		if parent == nil {
			return next(ctx, cmd)
		}

		span := parent.StartChild("db.redis")
		span.Description = strings.ToUpper(cmd.Name())
		span.SetData("db.system", "redis")

		start := time.Now()
		err := next(span.Context(), cmd)

		if h.slowThreshold > 0 && time.Since(start) < h.slowThreshold {
			span.Sampled = sentry.SampledFalse
		}
		if err != nil && err != redis.Nil {
			span.Status = sentry.SpanStatusInternalError
		} else {
			span.Status = sentry.SpanStatusOK
		}
		span.Finish()
		return err
	}
}

func (h *RedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		parent := sentry.SpanFromContext(ctx)
		if parent == nil {
			return next(ctx, cmds)
		}

		span := parent.StartChild("db.redis.pipeline")
		span.Description = pipelineDescription(cmds)
		span.SetData("db.system", "redis")
		span.SetData("redis.pipeline_length", len(cmds))

		start := time.Now()
		err := next(span.Context(), cmds)

		if h.slowThreshold > 0 && time.Since(start) < h.slowThreshold {
			span.Sampled = sentry.SampledFalse
		}
		if err != nil {
			span.Status = sentry.SpanStatusInternalError
		} else {
			span.Status = sentry.SpanStatusOK
		}
		span.Finish()
		return err
	}
}

// pipelineDescription 只列出前几个命令名，避免描述过长
func pipelineDescription(cmds []redis.Cmder) string {
	const maxShow = 3
	if len(cmds) == 0 {
		return "PIPELINE (empty)"
	}
	var names []string
	for i, cmd := range cmds {
		if i >= maxShow {
			break
		}
		names = append(names, strings.ToUpper(cmd.Name()))
	}
	desc := "PIPELINE: " + strings.Join(names, ", ")
	if len(cmds) > maxShow {
		desc += "..."
	}
	return desc
}
