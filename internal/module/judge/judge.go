package judge

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/raducarabat/hackcontrol/internal/global/auth"
	"github.com/raducarabat/hackcontrol/internal/global/database"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/response"
	"github.com/raducarabat/hackcontrol/internal/model"
	"github.com/raducarabat/hackcontrol/tools"
	"gorm.io/gorm"
)

// JudgeReq 定义添加/移除评委请求的结构体
type JudgeReq struct {
	HackathonID uint `json:"hackathon_id" binding:"required"`
	UserID      uint `json:"user_id" binding:"required"`
}

// canManageJudges 检查调用者能否管理该黑客松的评委：
// 黑客松创建者（不要求全局角色）或具有组织者及以上角色，管理员全局放行
func canManageJudges(caller *jwt.Claims, hackathonID uint) *response.Error {
	if err := auth.Require(database.DB, caller, auth.LevelManager, hackathonID); err == nil {
		return nil
	} else if err.Is(response.ErrNotFound) || err.Is(response.ErrDatabase) || err.Is(response.ErrInvalidRequest) {
		return err
	}
	return auth.Require(database.DB, caller, auth.LevelOrganizer, 0)
}

// AddJudge 给用户授予评委资格
func AddJudge(c *gin.Context) {
	caller, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req JudgeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定添加评委请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if authErr := canManageJudges(caller, req.HackathonID); authErr != nil {
		response.Fail(c, authErr)
		return
	}

	// 被邀请的用户必须存在
	var invited model.User
	err := database.DB.First(&invited, req.UserID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	j, err := Grant(database.DB, req.UserID, req.HackathonID, caller.UserID)
	if err != nil {
		if IsDuplicateErr(err) {
			log.Warn("评委已存在", "user_id", req.UserID, "hackathon_id", req.HackathonID)
			response.Fail(c, response.ErrAlreadyExists.WithTips("该用户已经是评委"))
			return
		}
		log.Error("添加评委失败", "error", err, "user_id", req.UserID, "hackathon_id", req.HackathonID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("评委添加成功",
		"judge_id", j.ID,
		"user_id", req.UserID,
		"hackathon_id", req.HackathonID,
		"invited_by", caller.UserID,
	)
	response.Success(c, j)
}

// RemoveJudge 移除评委资格，授权记录硬删除，下个请求立即失效
func RemoveJudge(c *gin.Context) {
	caller, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req JudgeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if authErr := canManageJudges(caller, req.HackathonID); authErr != nil {
		response.Fail(c, authErr)
		return
	}

	err := Revoke(database.DB, req.UserID, req.HackathonID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("评委不存在"))
		return
	case err != nil:
		log.Error("移除评委失败", "error", err, "user_id", req.UserID, "hackathon_id", req.HackathonID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("评委已移除", "user_id", req.UserID, "hackathon_id", req.HackathonID)
	response.Success(c, nil)
}

// ListJudges 获取黑客松的评委列表，按邀请时间升序
func ListJudges(c *gin.Context) {
	hackathonID := tools.ParseUintParam(c, "hackathon_id")
	if hackathonID == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少 hackathon_id"))
		return
	}

	var judges []model.Judge
	if err := database.DB.Preload("User").
		Where("hackathon_id = ?", hackathonID).
		Order("created_at ASC").
		Find(&judges).Error; err != nil {
		log.Error("查询评委列表失败", "error", err, "hackathon_id", hackathonID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, judges)
}

// judgedHackathonItem 是"我在评审的黑客松"列表项
type judgedHackathonItem struct {
	JudgeID   uint            `json:"judge_id"`
	InvitedAt int64           `json:"invited_at"`
	Hackathon model.Hackathon `json:"hackathon"`
}

// JudgedHackathons 获取当前用户担任评委的黑客松，按受邀时间降序
func JudgedHackathons(c *gin.Context) {
	caller, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var judges []model.Judge
	if err := database.DB.Preload("Hackathon").
		Where("user_id = ?", caller.UserID).
		Order("created_at DESC").
		Find(&judges).Error; err != nil {
		log.Error("查询评审列表失败", "error", err, "user_id", caller.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	items := make([]judgedHackathonItem, 0, len(judges))
	for _, j := range judges {
		items = append(items, judgedHackathonItem{
			JudgeID:   j.ID,
			InvitedAt: j.CreatedAt.UnixMilli(),
			Hackathon: j.Hackathon,
		})
	}
	response.Success(c, items)
}
