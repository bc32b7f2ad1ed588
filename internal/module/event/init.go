package event

import (
	"log/slog"

	"campus-notifier/internal/global/logger"
	"campus-notifier/internal/global/pictureBed"
	"campus-notifier/internal/notify"
	"campus-notifier/internal/store"
)

var log *slog.Logger

type ModuleEvent struct {
	Store    store.Events
	Images   pictureBed.ImageStore
	Notifier *notify.Notifier
}

func (m *ModuleEvent) GetName() string {
	return "Event"
}

func (m *ModuleEvent) Init() {
	log = logger.New("Event")
}
