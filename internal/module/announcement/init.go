package announcement

import (
	"log/slog"

	"github.com/raducarabat/hackcontrol/internal/global/logger"
)

var log *slog.Logger

type ModuleAnnouncement struct{}

func (a *ModuleAnnouncement) GetName() string {
	return "Announcement"
}

func (a *ModuleAnnouncement) Init() {
	log = logger.New("Announcement")
}
