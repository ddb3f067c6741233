package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/raducarabat/hackcontrol/config"
	"github.com/raducarabat/hackcontrol/internal/global/sentry/tracing"
	"github.com/raducarabat/hackcontrol/tools"
	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

const tokenBlacklistPrefix = "hackcontrol:token:blacklist:"

func Init() {
	cfg := config.Get().Redis
	if !cfg.Enable {
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if tracing.IsEnabled() {
		Client.AddHook(tracing.NewRedisHook())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tools.PanicOnErr(Client.Ping(ctx).Err())
}

// BlacklistToken 把登出的令牌加入黑名单，ttl 应取令牌剩余有效期
func BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if Client == nil || ttl <= 0 {
		return nil
	}
	return Client.Set(ctx, tokenBlacklistPrefix+token, 1, ttl).Err()
}

// IsTokenBlacklisted 查询令牌是否已登出。
// redis 未启用或查询出错时放行，令牌本身的签名校验仍然生效。
func IsTokenBlacklisted(ctx context.Context, token string) bool {
	if Client == nil {
		return false
	}
	n, err := Client.Exists(ctx, tokenBlacklistPrefix+token).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// String 便于日志输出连接目标
func String() string {
	cfg := config.Get().Redis
	return fmt.Sprintf("redis://%s:%s/%d", cfg.Host, cfg.Port, cfg.DB)
}
