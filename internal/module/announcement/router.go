package announcement

import (
	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/middleware"
)

func (a *ModuleAnnouncement) InitRouter(r *gin.RouterGroup) {
	// 公告模块路由组，所有端点以 /announcement 为前缀
	announcementGroup := r.Group("/announcement")

	// 公告展示公开
	announcementGroup.GET("/list/:url", ListByHackathon)

	announcementGroup.Use(middleware.Auth(jwt.RoleUser))
	{
		// 所有权检查在 handler 内做
		announcementGroup.POST("/create", CreateAnnouncement)
		announcementGroup.PUT("/update/:id", UpdateAnnouncement)
		announcementGroup.DELETE("/delete/:id", DeleteAnnouncement)
	}
}
