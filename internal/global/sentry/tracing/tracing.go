// Package tracing 提供 Sentry 性能追踪的集成
// 包含 GORM、Redis 和 resty 客户端的追踪实现
package tracing

import (
	"context"

	"campus-notifier/config"

	"github.com/getsentry/sentry-go"
)

// IsEnabled 检查 Sentry 追踪是否已启用
func IsEnabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// StartSpanFromContext 在 ctx 当前的 transaction 下创建子 span
// 没有父 span 时返回 nil，调用方需判空
func StartSpanFromContext(ctx context.Context, operation, description string) *sentry.Span {
	parentSpan := sentry.SpanFromContext(ctx)
	if parentSpan == nil {
		return nil
	}
	span := parentSpan.StartChild(operation)
	span.Description = description
	return span
}

// finish 根据耗时与阈值决定是否采样，然后结束 span
func finish(span *sentry.Span, elapsedOK bool, err error, errKey string) {
	if !elapsedOK {
		span.Sampled = sentry.SampledFalse
	}
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData(errKey, err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}
