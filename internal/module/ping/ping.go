package ping

import (
	"context"
	"net/http"
	"sort"
	"time"

	"campus-notifier/internal/global/response"

	"github.com/gin-gonic/gin"
)

const (
	version      = "1.0.0"
	checkTimeout = 3 * time.Second
)

var errUnhealthy = response.ErrServerInternal.WithTips("dependency unavailable")

func Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"message": "pong",
		"version": version,
	})
}

// Health 依次检查各依赖，任一失败返回 503 并附带各项状态
func (p *ModulePing) Health(c *gin.Context) {
	names := make([]string, 0, len(p.Checks))
	for name := range p.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		err := p.Checks[name](ctx)
		cancel()
		if err != nil {
			log.Warn("健康检查失败", "component", name, "error", err)
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}

	if !healthy {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.ResponseBody{
			Code: errUnhealthy.Code,
			Msg:  errUnhealthy.Message,
			Data: status,
		})
		return
	}
	response.Success(c, status)
}
