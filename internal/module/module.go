package module

import (
	"context"

	"campus-notifier/internal/global/pictureBed"
	"campus-notifier/internal/global/redis"
	"campus-notifier/internal/module/event"
	"campus-notifier/internal/module/opportunity"
	"campus-notifier/internal/module/ping"
	"campus-notifier/internal/module/registration"
	"campus-notifier/internal/module/user"
	"campus-notifier/internal/notify"
	"campus-notifier/internal/store"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

// Deps 启动时构造一次的进程级依赖，注入到各模块
type Deps struct {
	Store    store.Store
	Images   pictureBed.ImageStore
	Notifier *notify.Notifier
	Locker   redis.Locker
	// Checks 健康检查项，键为组件名
	Checks map[string]func(context.Context) error
	// AdminEmails 使用这些邮箱注册的账号直接获得管理员角色
	AdminEmails []string
}

// Build 按注册顺序构造所有模块
func Build(d Deps) []Module {
	return []Module{
		&ping.ModulePing{Checks: d.Checks},
		&user.ModuleUser{Store: d.Store, Notifier: d.Notifier, AdminEmails: d.AdminEmails},
		&event.ModuleEvent{Store: d.Store, Images: d.Images, Notifier: d.Notifier},
		&opportunity.ModuleOpportunity{Store: d.Store, Notifier: d.Notifier},
		&registration.ModuleRegistration{Store: d.Store, Locker: d.Locker},
	}
}
