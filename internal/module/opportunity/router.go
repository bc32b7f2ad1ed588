package opportunity

import (
	"campus-notifier/internal/global/middleware"
	"campus-notifier/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleOpportunity) InitRouter(r *gin.RouterGroup) {
	opportunityGroup := r.Group("/opportunities")

	opportunityGroup.GET("", m.List)
	opportunityGroup.GET("/:id", m.Get)

	admin := opportunityGroup.Group("", middleware.Auth(model.RoleAdmin))
	admin.POST("", m.Create)
	admin.PATCH("/:id", m.Update)
	admin.DELETE("/:id", m.Delete)
}
