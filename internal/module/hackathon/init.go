package hackathon

import (
	"log/slog"

	"github.com/raducarabat/hackcontrol/internal/global/logger"
)

var log *slog.Logger

type ModuleHackathon struct{}

func (h *ModuleHackathon) GetName() string {
	return "Hackathon"
}

func (h *ModuleHackathon) Init() {
	log = logger.New("Hackathon")
}
