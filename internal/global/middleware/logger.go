package middleware

import (
	"bytes"
	"log/slog"
	"strings"
	"time"

	sentrylib "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// maxResponseLogSize 日志中记录的响应体最大大小（10KB）
const maxResponseLogSize = 10 * 1024

// bodyRecorder 包装 gin.ResponseWriter，只保留响应体的前 maxResponseLogSize 字节
type bodyRecorder struct {
	gin.ResponseWriter
	body      bytes.Buffer
	truncated bool
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	if remaining := maxResponseLogSize - w.body.Len(); remaining > 0 {
		if len(b) > remaining {
			w.body.Write(b[:remaining])
			w.truncated = true
		} else {
			w.body.Write(b)
		}
	} else if len(b) > 0 {
		w.truncated = true
	}
	return w.ResponseWriter.Write(b)
}

// Logger 记录访问日志；文件下载等二进制响应不记录响应体
func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		body := ""
		if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
			body = rec.body.String()
			if rec.truncated {
				body += "...(truncated)"
			}
		}
		level := slog.LevelInfo
		if rec.Status() >= 500 {
			level = slog.LevelError
		}
		log.Log(c.Request.Context(), level, "HTTP Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", rec.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
			"response_body", body,
		)
	}
}

// SentryEnrichIP 中间件：将 client IP 注入到 Sentry Scope 中
// 放在 sentry.Middleware() 之后，所有后续的 Sentry 上报（日志、事件、性能追踪）都会自动携带 IP
func SentryEnrichIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.ConfigureScope(func(scope *sentrylib.Scope) {
				clientIP := c.ClientIP()

				// 将 IP 设置到 Sentry User 中
				scope.SetUser(sentrylib.User{
					IPAddress: clientIP,
				})

				// 同时作为 Tag 方便在 Sentry 中搜索和过滤
				scope.SetTag("client_ip", clientIP)

				// 记录代理转发的真实 IP
				if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
					scope.SetTag("x_forwarded_for", forwardedFor)
				}
				if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
					scope.SetTag("x_real_ip", realIP)
				}
			})
		}
		c.Next()
	}
}
