package judge

import (
	"log/slog"

	"github.com/raducarabat/hackcontrol/internal/global/logger"
)

var log *slog.Logger

type ModuleJudge struct{}

func (j *ModuleJudge) GetName() string {
	return "Judge"
}

func (j *ModuleJudge) Init() {
	log = logger.New("Judge")
}
