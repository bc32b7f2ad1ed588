package event

import (
	"campus-notifier/internal/global/middleware"
	"campus-notifier/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleEvent) InitRouter(r *gin.RouterGroup) {
	eventGroup := r.Group("/events")

	eventGroup.GET("", m.List)
	eventGroup.GET("/:id", m.Get)

	admin := eventGroup.Group("", middleware.Auth(model.RoleAdmin))
	admin.POST("", m.Create)
	admin.PATCH("/:id", m.Update)
	admin.DELETE("/:id", m.Delete)
}
