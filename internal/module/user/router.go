package user

import (
	"campus-notifier/internal/global/middleware"
	"campus-notifier/internal/model"

	"github.com/gin-gonic/gin"
)

// InitRouter 注册与登录公开，其余用户管理接口需要令牌
func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/users")

	userGroup.POST("/signup", u.Signup)
	userGroup.POST("/login", u.Login)

	userGroup.GET("", middleware.Auth(model.RoleAdmin), u.List)
	userGroup.GET("/:id", middleware.Auth(model.RoleUser), u.Get)
	userGroup.PATCH("/:id", middleware.Auth(model.RoleUser), u.Update)
	userGroup.DELETE("/:id", middleware.Auth(model.RoleAdmin), u.Delete)
}
