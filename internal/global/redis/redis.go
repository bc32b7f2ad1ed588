package redis

import (
	"context"
	"net"
	"time"

	"campus-notifier/config"
	"campus-notifier/internal/global/sentry/tracing"

	goredis "github.com/redis/go-redis/v9"
)

var Client *goredis.Client

// Init 未配置 Redis 时保持 Client 为 nil
func Init() error {
	cfg := config.Get().Redis
	if !cfg.Enabled() {
		return nil
	}
	Client = goredis.NewClient(&goredis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if tracing.IsEnabled() {
		Client.AddHook(tracing.NewRedisSentryHook())
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return Client.Ping(ctx).Err()
}

func Close() error {
	if Client == nil {
		return nil
	}
	return Client.Close()
}
