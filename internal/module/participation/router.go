package participation

import (
	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/middleware"
)

func (p *ModuleParticipation) InitRouter(r *gin.RouterGroup) {
	// 参赛作品模块路由组，所有端点以 /participation 为前缀
	participationGroup := r.Group("/participation")

	// 作品列表公开
	participationGroup.GET("/list/:url", ListByHackathon)

	participationGroup.Use(middleware.Auth(jwt.RoleUser))
	{
		participationGroup.POST("/create", CreateParticipation)
		participationGroup.GET("/mine", MyParticipations)
		participationGroup.PUT("/update/:id", UpdateParticipation)
	}
}
