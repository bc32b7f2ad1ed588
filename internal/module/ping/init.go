package ping

import (
	"context"
	"log/slog"

	"campus-notifier/internal/global/logger"
)

var log *slog.Logger

type ModulePing struct {
	// Checks 健康检查项，键为组件名
	Checks map[string]func(context.Context) error
}

func (p *ModulePing) GetName() string {
	return "Ping"
}

func (p *ModulePing) Init() {
	log = logger.New("Ping")
}
