package tracing

import (
	"time"

	"github.com/raducarabat/hackcontrol/config"
)

// IsEnabled 判断 Sentry 性能追踪是否开启（配置了 DSN 即开启）
func IsEnabled() bool {
	return config.Get().Sentry.Dsn != ""
}

func dbSlowThreshold() time.Duration {
	return time.Duration(config.Get().Sentry.Tracing.DBSlowThresholdMs) * time.Millisecond
}

func httpSlowThreshold() time.Duration {
	return time.Duration(config.Get().Sentry.Tracing.HTTPSlowThresholdMs) * time.Millisecond
}

func redisSlowThreshold() time.Duration {
	return time.Duration(config.Get().Sentry.Tracing.RedisSlowThresholdMs) * time.Millisecond
}
