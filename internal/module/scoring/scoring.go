package scoring

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/raducarabat/hackcontrol/internal/global/auth"
	"github.com/raducarabat/hackcontrol/internal/global/database"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/response"
	"github.com/raducarabat/hackcontrol/internal/model"
	"github.com/raducarabat/hackcontrol/internal/module/judge"
	"github.com/raducarabat/hackcontrol/tools"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmitReq 定义提交分数请求的结构体，分值取值 [1,10]
type SubmitReq struct {
	ParticipationID uint `json:"participation_id" binding:"required"`
	Score           int  `json:"score" binding:"required,min=1,max=10"`
}

// SubmitScore 评委给作品打分。
//
// judge_id 由服务端按 (调用者, 黑客松) 解析，调用者不能替别的评委提分。
// 写入走 (judge_id, participation_id) 唯一键上的原子 upsert：同一评委重复
// 提交（包括并发的双击重试）收敛成一行，后写覆盖先写；不同评委互不冲突。
func SubmitScore(c *gin.Context) {
	caller, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req SubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定打分请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	// binding 校验过范围，这里再兜底一次，防止绑定标签日后被改动
	if req.Score < 1 || req.Score > 10 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("分数必须在 1 到 10 之间"))
		return
	}

	// 作品 → 黑客松链路必须完整
	var participation model.Participation
	err := database.DB.First(&participation, req.ParticipationID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("作品不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	hackathon, authErr := auth.RequireHackathon(database.DB, caller, auth.LevelJudge, participation.HackathonID)
	if authErr != nil {
		response.Fail(c, authErr)
		return
	}

	// 打分窗口关闭是业务状态，和权限无关：有资格的评委此时也会被拒绝
	if hackathon.IsFinished {
		response.Fail(c, response.ErrFinished)
		return
	}

	j, err := judge.Resolve(database.DB, caller.UserID, hackathon.ID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// 管理员有权限但没有评委记录时也会走到这里
		response.Fail(c, response.ErrNotFound.WithTips("评委记录不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	score := model.Score{
		JudgeID:         j.ID,
		ParticipationID: participation.ID,
		Score:           req.Score,
	}
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "judge_id"}, {Name: "participation_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(&score).Error; err != nil {
		log.Error("写入分数失败", "error", err, "judge_id", j.ID, "participation_id", participation.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("分数已记录",
		"judge_id", j.ID,
		"participation_id", participation.ID,
		"score", req.Score,
	)
	response.Success(c, score)
}

// scoreWithJudge 是单作品分数列表项
type scoreWithJudge struct {
	ID      uint   `json:"id"`
	Score   int    `json:"score"`
	JudgeID uint   `json:"judge_id"`
	Name    string `json:"judge_name"`
}

// GetSubmissionScores 获取一个作品收到的全部分数及评委信息
func GetSubmissionScores(c *gin.Context) {
	participationID := tools.ParseUintParam(c, "participation_id")
	if participationID == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少 participation_id"))
		return
	}

	var scores []model.Score
	if err := database.DB.Preload("Judge.User").
		Where("participation_id = ?", participationID).
		Order("created_at ASC").
		Find(&scores).Error; err != nil {
		log.Error("查询作品分数失败", "error", err, "participation_id", participationID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	items := make([]scoreWithJudge, 0, len(scores))
	for _, s := range scores {
		items = append(items, scoreWithJudge{
			ID:      s.ID,
			Score:   s.Score,
			JudgeID: s.JudgeID,
			Name:    s.Judge.User.Name,
		})
	}
	response.Success(c, items)
}

// GetJudgeScores 获取当前评委在某黑客松已提交的分数
func GetJudgeScores(c *gin.Context) {
	caller, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	hackathonID := tools.ParseUintParam(c, "hackathon_id")
	if hackathonID == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少 hackathon_id"))
		return
	}

	j, err := judge.Resolve(database.DB, caller.UserID, hackathonID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("评委记录不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var scores []model.Score
	if err := database.DB.Preload("Participation").
		Where("judge_id = ?", j.ID).
		Order("updated_at DESC").
		Find(&scores).Error; err != nil {
		log.Error("查询评委分数失败", "error", err, "judge_id", j.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, scores)
}

// GetProgress 获取当前评委在某黑客松的打分进度
func GetProgress(c *gin.Context) {
	caller, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	hackathonID := tools.ParseUintParam(c, "hackathon_id")
	if hackathonID == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少 hackathon_id"))
		return
	}

	j, err := judge.Resolve(database.DB, caller.UserID, hackathonID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("评委记录不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var total int64
	if err := database.DB.Model(&model.Participation{}).
		Where("hackathon_id = ?", hackathonID).
		Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var scored int64
	if err := database.DB.Model(&model.Score{}).
		Joins("JOIN participation ON participation.id = score.participation_id").
		Where("score.judge_id = ? AND participation.hackathon_id = ?", j.ID, hackathonID).
		Count(&scored).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, CalculateProgress(int(total), int(scored)))
}

// GetRankings 计算黑客松排行榜，每次请求基于当前分数快照重新计算
func GetRankings(c *gin.Context) {
	hackathonID := tools.ParseUintParam(c, "hackathon_id")
	if hackathonID == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少 hackathon_id"))
		return
	}

	result, err := computeRankings(hackathonID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

// computeRankings 读取一次分数快照并计算排行
func computeRankings(hackathonID uint) (*RankingResult, *response.Error) {
	var hackathon model.Hackathon
	err := database.DB.First(&hackathon, hackathonID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("黑客松不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	var participations []model.Participation
	if err := database.DB.Where("hackathon_id = ?", hackathon.ID).
		Order("created_at ASC").
		Find(&participations).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	ids := make([]uint, 0, len(participations))
	for _, p := range participations {
		ids = append(ids, p.ID)
	}

	scoresByParticipation := make(map[uint][]int, len(ids))
	if len(ids) > 0 {
		var scores []model.Score
		if err := database.DB.Where("participation_id IN ?", ids).
			Find(&scores).Error; err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
		for _, s := range scores {
			scoresByParticipation[s.ParticipationID] = append(scoresByParticipation[s.ParticipationID], s.Score)
		}
	}

	submissions := make([]SubmissionScores, 0, len(participations))
	for _, p := range participations {
		submissions = append(submissions, SubmissionScores{
			Participation: p,
			Scores:        scoresByParticipation[p.ID],
		})
	}

	result := CalculateRankings(submissions, hackathon.MinJudgesRequired)
	return &result, nil
}
