package participation

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/raducarabat/hackcontrol/internal/global/auth"
	"github.com/raducarabat/hackcontrol/internal/global/database"
	"github.com/raducarabat/hackcontrol/internal/global/httpclient"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/response"
	"github.com/raducarabat/hackcontrol/internal/model"
	"github.com/raducarabat/hackcontrol/tools"
	"gorm.io/gorm"
)

// CreateReq 定义提交参赛作品请求的结构体
type CreateReq struct {
	HackathonURL string `json:"hackathon_url" binding:"required"`
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description" binding:"max=1000"`
	ProjectURL   string `json:"project_url" binding:"required,url"`
}

// CreateParticipation 提交参赛作品。
// 同一用户对同一黑客松只能提交一份；黑客松结束后不再接受提交。
func CreateParticipation(c *gin.Context) {
	caller, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定提交作品请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var hackathon model.Hackathon
	err := database.DB.Where("url = ?", req.HackathonURL).First(&hackathon).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("黑客松不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if hackathon.IsFinished {
		response.Fail(c, response.ErrFinished)
		return
	}

	var existing model.Participation
	err = database.DB.Where("hackathon_id = ? AND creator_id = ?", hackathon.ID, caller.UserID).
		First(&existing).Error
	if err == nil {
		response.Fail(c, response.ErrAlreadyExists.WithTips("你已经提交过参赛作品"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 作品链接探活，只记日志不拦截，离线仓库也允许提交
	if !httpclient.ProbeURL(c.Request.Context(), req.ProjectURL) {
		log.Warn("作品链接不可达", "project_url", req.ProjectURL, "user_id", caller.UserID)
	}

	participation := model.Participation{
		HackathonID:  hackathon.ID,
		HackathonURL: hackathon.URL,
		CreatorID:    caller.UserID,
		CreatorName:  caller.Username,
		Title:        req.Title,
		Description:  req.Description,
		ProjectURL:   req.ProjectURL,
	}
	if err := database.DB.Create(&participation).Error; err != nil {
		log.Error("提交作品失败", "error", err, "hackathon_id", hackathon.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("作品提交成功",
		"participation_id", participation.ID,
		"hackathon_id", hackathon.ID,
		"creator_id", caller.UserID,
	)
	response.Success(c, participation)
}

// ListByHackathon 获取某黑客松的参赛作品列表
func ListByHackathon(c *gin.Context) {
	url := c.Param("url")
	if url == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少 url"))
		return
	}

	var participations []model.Participation
	if err := database.DB.Where("hackathon_url = ?", url).
		Order("created_at ASC").
		Find(&participations).Error; err != nil {
		log.Error("查询作品列表失败", "error", err, "url", url)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, participations)
}

// MyParticipations 获取当前用户的全部参赛记录
func MyParticipations(c *gin.Context) {
	caller, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var participations []model.Participation
	if err := database.DB.Where("creator_id = ?", caller.UserID).
		Order("created_at DESC").
		Find(&participations).Error; err != nil {
		log.Error("查询参赛记录失败", "error", err, "user_id", caller.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, participations)
}

// UpdateReq 定义更新作品请求的结构体，指针字段支持部分更新。
// 基本信息由作者本人修改，评审标记（is_reviewed / is_winner）需要评委资格。
type UpdateReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ProjectURL  *string `json:"project_url"`
	IsReviewed  *bool   `json:"is_reviewed"`
	IsWinner    *bool   `json:"is_winner"`
}

// UpdateParticipation 更新参赛作品
func UpdateParticipation(c *gin.Context) {
	caller, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	id := tools.ParseUintParam(c, "id")
	if id == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少 id"))
		return
	}

	var req UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var participation model.Participation
	err := database.DB.First(&participation, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("作品不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	hackathon, authErr := resolveHackathon(participation.HackathonID)
	if authErr != nil {
		response.Fail(c, authErr)
		return
	}
	if hackathon.IsFinished {
		response.Fail(c, response.ErrFinished)
		return
	}

	updates := map[string]any{}

	// 作者可以改基本信息
	if req.Title != nil || req.Description != nil || req.ProjectURL != nil {
		if participation.CreatorID != caller.UserID && caller.RoleID < jwt.RoleAdmin {
			response.Fail(c, response.ErrForbidden)
			return
		}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.ProjectURL != nil {
			updates["project_url"] = *req.ProjectURL
		}
	}

	// 评审标记需要评委资格
	if req.IsReviewed != nil || req.IsWinner != nil {
		if authErr := auth.Require(database.DB, caller, auth.LevelJudge, participation.HackathonID); authErr != nil {
			response.Fail(c, authErr)
			return
		}
		if req.IsReviewed != nil {
			updates["is_reviewed"] = *req.IsReviewed
		}
		if req.IsWinner != nil {
			updates["is_winner"] = *req.IsWinner
		}
	}

	if len(updates) == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("没有需要更新的字段"))
		return
	}

	if err := database.DB.Model(&participation).Updates(updates).Error; err != nil {
		log.Error("更新作品失败", "error", err, "participation_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("作品更新成功", "participation_id", id)
	response.Success(c, participation)
}

func resolveHackathon(hackathonID uint) (*model.Hackathon, *response.Error) {
	var hackathon model.Hackathon
	err := database.DB.First(&hackathon, hackathonID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("黑客松不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &hackathon, nil
}
