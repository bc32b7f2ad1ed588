package tracing

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"campus-notifier/config"

	"github.com/redis/go-redis/v9"
)

// RedisSentryHook 实现 redis.Hook，为命令与 pipeline 创建子 span
type RedisSentryHook struct {
	slowThreshold time.Duration
}

func NewRedisSentryHook() *RedisSentryHook {
	ms := config.Get().Sentry.Tracing.RedisSlowThresholdMs
	return &RedisSentryHook{slowThreshold: time.Duration(ms) * time.Millisecond}
}

func (h *RedisSentryHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *RedisSentryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		span := StartSpanFromContext(ctx, "db.redis", strings.ToUpper(cmd.Name()))
		if span != nil {
			span.SetData("db.system", "redis")
			span.SetData("db.operation", cmd.Name())
			ctx = span.Context()
		}

		err := next(ctx, cmd)

		if span != nil {
			// redis.Nil 表示键不存在，不算失败
			spanErr := err
			if errors.Is(err, redis.Nil) {
				spanErr = nil
			}
			finish(span, h.slow(start), spanErr, "redis.error")
		}
		return err
	}
}

func (h *RedisSentryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		span := StartSpanFromContext(ctx, "db.redis.pipeline", pipelineDescription(cmds))
		if span != nil {
			span.SetData("db.system", "redis")
			span.SetData("redis.pipeline_length", len(cmds))
			ctx = span.Context()
		}

		err := next(ctx, cmds)

		if span != nil {
			finish(span, h.slow(start), err, "redis.error")
		}
		return err
	}
}

func (h *RedisSentryHook) slow(start time.Time) bool {
	return h.slowThreshold == 0 || time.Since(start) >= h.slowThreshold
}

func pipelineDescription(cmds []redis.Cmder) string {
	const maxShow = 3
	if len(cmds) == 0 {
		return "PIPELINE (empty)"
	}
	names := make([]string, 0, maxShow)
	for i, cmd := range cmds {
		if i == maxShow {
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
