package registration

import (
	"campus-notifier/internal/global/middleware"
	"campus-notifier/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleRegistration) InitRouter(r *gin.RouterGroup) {
	registerGroup := r.Group("/event-register")

	registerGroup.GET("", m.List)
	registerGroup.GET("/export", middleware.Auth(model.RoleAdmin), m.Export)
	registerGroup.POST("/:eventId", middleware.Auth(model.RoleUser), m.Register)
	registerGroup.GET("/:id", middleware.Auth(model.RoleUser), m.Get)
	registerGroup.DELETE("/:id", middleware.Auth(model.RoleUser), m.Delete)
}
