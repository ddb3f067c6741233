package participation

import (
	"log/slog"

	"github.com/raducarabat/hackcontrol/internal/global/logger"
)

var log *slog.Logger

type ModuleParticipation struct{}

func (p *ModuleParticipation) GetName() string {
	return "Participation"
}

func (p *ModuleParticipation) Init() {
	log = logger.New("Participation")
}
