package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/config"
	"github.com/raducarabat/hackcontrol/internal/global/cache"
	"github.com/raducarabat/hackcontrol/internal/global/database"
	"github.com/raducarabat/hackcontrol/internal/global/httpclient"
	"github.com/raducarabat/hackcontrol/internal/global/logger"
	"github.com/raducarabat/hackcontrol/internal/global/middleware"
	internalOtel "github.com/raducarabat/hackcontrol/internal/global/otel"
	internalSentry "github.com/raducarabat/hackcontrol/internal/global/sentry"
	"github.com/raducarabat/hackcontrol/internal/module"
	"github.com/raducarabat/hackcontrol/tools"
)

var log *slog.Logger

func Init() {
	config.Init()

	if err := internalSentry.Init(); err != nil {
		panic(err)
	}

	log = logger.New("Server")

	database.Init()
	cache.Init()
	httpclient.Init()

	if config.Get().OTel.Enable {
		log.Info("OTel Enabled")
		internalOtel.Init()
	}

	if config.Get().Redis.Enable {
		log.Info("Redis Enabled", "addr", cache.String())
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(internalSentry.Middleware())
	r.Use(internalSentry.ReportCodedErrors())
	r.Use(middleware.Recovery())

	if config.Get().OTel.Enable {
		r.Use(middleware.Trace())
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}

	defer shutdown()
	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}

func shutdown() {
	internalSentry.Flush(2 * time.Second)
	if config.Get().OTel.Enable {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := internalOtel.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown TracerProvider", "error", err)
		}
	}
}
