package scoring

import (
	"log/slog"

	"github.com/raducarabat/hackcontrol/internal/global/logger"
)

var log *slog.Logger

type ModuleScoring struct{}

func (s *ModuleScoring) GetName() string {
	return "Scoring"
}

func (s *ModuleScoring) Init() {
	log = logger.New("Scoring")
}
