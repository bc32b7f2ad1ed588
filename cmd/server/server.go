package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"campus-notifier/config"
	"campus-notifier/internal/global/database"
	"campus-notifier/internal/global/logger"
	"campus-notifier/internal/global/mail"
	"campus-notifier/internal/global/middleware"
	internalOtel "campus-notifier/internal/global/otel"
	"campus-notifier/internal/global/pictureBed"
	"campus-notifier/internal/global/redis"
	"campus-notifier/internal/global/sentry"
	"campus-notifier/internal/module"
	"campus-notifier/internal/notify"
	"campus-notifier/internal/store"
	"campus-notifier/tools"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 30 * time.Second

var (
	log      *slog.Logger
	notifier *notify.Notifier
	modules  []module.Module
)

// Init 加载配置并构造进程级依赖，任何一步失败都直接 panic
func Init() {
	config.Init()
	cfg := config.Get()

	tools.PanicOnErr(sentry.Init())
	log = logger.New("Server")

	if cfg.OTel.Enable {
		log.Info("OTel Enabled")
		tools.PanicOnErr(internalOtel.Init(context.Background()))
	}

	database.Init()
	st := store.NewGormStore(database.DB)
	checks := map[string]func(context.Context) error{"database": st.Ping}

	tools.PanicOnErr(redis.Init())
	var locker redis.Locker = redis.NopLocker{}
	if redis.Client != nil {
		log.Info("Redis Enabled")
		locker = redis.NewLocker(redis.Client)
		checks["redis"] = func(ctx context.Context) error {
			return redis.Client.Ping(ctx).Err()
		}
	}

	images, err := pictureBed.New(context.Background(), cfg)
	tools.PanicOnErr(err)

	transport, err := mail.New(cfg.Mail)
	tools.PanicOnErr(err)
	notifier = notify.New(st, transport, notify.Options{
		Concurrency: cfg.Mail.Concurrency,
		SendTimeout: cfg.Mail.SendTimeout,
		AppName:     cfg.AppName,
		FrontendURL: cfg.FrontendURL,
		Logger:      logger.New("Notify"),
	})

	modules = module.Build(module.Deps{
		Store:       st,
		Images:      images,
		Notifier:    notifier,
		Locker:      locker,
		Checks:      checks,
		AdminEmails: cfg.AdminEmails,
	})
	for _, m := range modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func engine(cfg *config.Config) *gin.Engine {
	gin.SetMode(string(cfg.Mode))
	r := gin.New()

	switch cfg.Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(sentry.Middleware())
	r.Use(middleware.SentryEnrichIP())
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	if cfg.OTel.Enable {
		r.Use(middleware.Trace())
	}

	if cfg.Storage.Driver == config.StorageDriverLocal {
		r.Static(cfg.Storage.BaseURL, cfg.Storage.Home)
	}

	api := r.Group("/" + strings.Trim(cfg.Prefix, "/"))
	for _, m := range modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(api)
	}
	return r
}

// Run 阻塞直到收到 SIGINT/SIGTERM，随后依次关闭 HTTP 服务、通知器与外部连接
func Run() {
	cfg := config.Get()
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           engine(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		tools.PanicOnErr(err)
	case <-ctx.Done():
		log.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
	}
	// 未发完的通知在超时后被取消
	if err := notifier.Shutdown(shutdownCtx); err != nil {
		log.Warn("Notifier did not drain in time", "error", err)
	}
	if cfg.OTel.Enable {
		if err := internalOtel.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown TracerProvider", "error", err)
		}
	}
	if err := redis.Close(); err != nil {
		log.Error("Failed to close redis", "error", err)
	}
	sentry.Flush(2 * time.Second)
}
