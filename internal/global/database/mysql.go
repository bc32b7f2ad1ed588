package database

import (
	"net"
	"time"

	"campus-notifier/config"
	"campus-notifier/internal/global/sentry/tracing"
	"campus-notifier/internal/model"
	"campus-notifier/tools"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// autoMigrateModels 定义需要自动迁移的模型列表，被引用的表在前
var autoMigrateModels = []any{
	&model.User{},
	&model.Event{},
	&model.Opportunity{},
	&model.EventRegistration{},
}

// DSN 优先使用完整连接串，否则由分项配置拼接
func DSN(c config.Mysql) string {
	if c.DSN != "" {
		return c.DSN
	}
	mc := mysqldriver.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, c.Port)
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

func Init() {
	cfg := config.Get()
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 还是单数表名好
		TranslateError: true,
	}

	switch cfg.Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(mysql.Open(DSN(cfg.Mysql)), gormConfig)
	tools.PanicOnErr(err)

	if tracing.IsEnabled() {
		tools.PanicOnErr(db.Use(tracing.NewGormTracingPlugin()))
	}
	DB = db

	tools.PanicOnErr(DB.AutoMigrate(autoMigrateModels...))
}
