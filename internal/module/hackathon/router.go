package hackathon

import (
	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/middleware"
)

func (h *ModuleHackathon) InitRouter(r *gin.RouterGroup) {
	// 黑客松模块路由组，所有端点以 /hackathon 为前缀
	hackathonGroup := r.Group("/hackathon")

	// 公开端点：黑客松详情页
	hackathonGroup.GET("/get/:url", GetHackathon)

	hackathonGroup.Use(middleware.Auth(jwt.RoleUser))
	{
		hackathonGroup.GET("/list", ListHackathons)

		// 编辑类端点的所有权检查在 handler 内做
		hackathonGroup.PUT("/update/:id", UpdateHackathon)
		hackathonGroup.PUT("/min-judges/:id", UpdateMinJudges)
		hackathonGroup.DELETE("/delete/:id", DeleteHackathon)
	}

	organizerGroup := r.Group("/hackathon", middleware.Auth(jwt.RoleOrganizer))
	{
		// 创建黑客松需要组织者及以上全局角色
		organizerGroup.POST("/create", CreateHackathon)
	}
}
