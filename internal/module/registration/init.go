package registration

import (
	"log/slog"

	"campus-notifier/internal/global/logger"
	"campus-notifier/internal/global/redis"
	"campus-notifier/internal/store"
)

var log *slog.Logger

type ModuleRegistration struct {
	Store  store.Store
	Locker redis.Locker
}

func (m *ModuleRegistration) GetName() string {
	return "Registration"
}

func (m *ModuleRegistration) Init() {
	log = logger.New("Registration")
	if m.Locker == nil {
		m.Locker = redis.NopLocker{}
	}
}
