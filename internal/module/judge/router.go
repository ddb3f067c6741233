package judge

import (
	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/middleware"
)

func (j *ModuleJudge) InitRouter(r *gin.RouterGroup) {
	// 评委模块路由组，所有端点以 /judge 为前缀
	judgeGroup := r.Group("/judge")

	judgeGroup.Use(middleware.Auth(jwt.RoleUser))
	{
		// 资源级权限（创建者或组织者）在 handler 内检查
		judgeGroup.POST("/add", AddJudge)
		judgeGroup.POST("/remove", RemoveJudge)

		judgeGroup.GET("/list/:hackathon_id", ListJudges)
		judgeGroup.GET("/judging", JudgedHackathons)
	}
}
