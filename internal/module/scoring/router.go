package scoring

import (
	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/middleware"
)

func (s *ModuleScoring) InitRouter(r *gin.RouterGroup) {
	// 打分模块路由组，所有端点以 /scoring 为前缀
	scoringGroup := r.Group("/scoring")

	// 排行榜和单作品分数公开，实时榜单每次请求重新计算
	scoringGroup.GET("/rankings/:hackathon_id", GetRankings)
	scoringGroup.GET("/submission/:participation_id", GetSubmissionScores)

	scoringGroup.Use(middleware.Auth(jwt.RoleUser))
	{
		// 评委资格在 handler 内检查
		scoringGroup.POST("/submit", SubmitScore)
		scoringGroup.GET("/judge/:hackathon_id", GetJudgeScores)
		scoringGroup.GET("/progress/:hackathon_id", GetProgress)
		scoringGroup.GET("/rankings/:hackathon_id/export", ExportRankings)
	}
}
