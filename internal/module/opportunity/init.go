package opportunity

import (
	"log/slog"

	"campus-notifier/internal/global/logger"
	"campus-notifier/internal/notify"
	"campus-notifier/internal/store"
)

var log *slog.Logger

type ModuleOpportunity struct {
	Store    store.Opportunities
	Notifier *notify.Notifier
}

func (m *ModuleOpportunity) GetName() string {
	return "Opportunity"
}

func (m *ModuleOpportunity) Init() {
	log = logger.New("Opportunity")
}
