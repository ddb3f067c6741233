package test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/raducarabat/hackcontrol/internal/global/cache"
	"github.com/redis/go-redis/v9"
)

// NewRedis 启动进程内 redis 并替换全局客户端，测试结束后自动关闭
func NewRedis(t *testing.T) *miniredis.Miniredis {
	mr := miniredis.RunT(t)
	cache.Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.Client = nil
	})
	return mr
}
