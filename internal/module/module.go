package module

import (
	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/internal/module/announcement"
	"github.com/raducarabat/hackcontrol/internal/module/hackathon"
	"github.com/raducarabat/hackcontrol/internal/module/judge"
	"github.com/raducarabat/hackcontrol/internal/module/participation"
	"github.com/raducarabat/hackcontrol/internal/module/ping"
	"github.com/raducarabat/hackcontrol/internal/module/scoring"
	"github.com/raducarabat/hackcontrol/internal/module/user"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&ping.ModulePing{},
		&user.ModuleUser{},
		&hackathon.ModuleHackathon{},
		&participation.ModuleParticipation{},
		&judge.ModuleJudge{},
		&scoring.ModuleScoring{},
		&announcement.ModuleAnnouncement{},
	})
}
