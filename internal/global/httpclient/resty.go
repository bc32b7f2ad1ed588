package httpclient

import (
	"time"

	"campus-notifier/internal/global/sentry/tracing"

	"github.com/go-resty/resty/v2"
)

// New 创建出站 HTTP 客户端，启用 Sentry 时附带请求追踪
func New(timeout time.Duration) *resty.Client {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "campus-notifier/1.0")
	if tracing.IsEnabled() {
		tracing.SetupRestyTracing(client)
	}
	return client
}
