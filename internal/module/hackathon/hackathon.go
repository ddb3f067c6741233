package hackathon

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/raducarabat/hackcontrol/config"
	"github.com/raducarabat/hackcontrol/internal/global/auth"
	"github.com/raducarabat/hackcontrol/internal/global/cache"
	"github.com/raducarabat/hackcontrol/internal/global/database"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/response"
	"github.com/raducarabat/hackcontrol/internal/model"
	"github.com/raducarabat/hackcontrol/internal/module/judge"
	"github.com/raducarabat/hackcontrol/tools"
	"gorm.io/gorm"
)

// CreateReq 定义创建黑客松请求的结构体
type CreateReq struct {
	Name        string `json:"name" binding:"required,max=100"`
	URL         string `json:"url" binding:"required,max=100"` // 唯一短链标识
	Description string `json:"description"`
	Rules       string `json:"rules"`
	Criteria    string `json:"criteria"`
	MinJudges   int    `json:"min_judges"` // 为 0 时取配置的默认值
}

// CreateHackathon 创建黑客松。
// 创建者在同一个事务里自动获得评委资格，不需要单独邀请自己。
func CreateHackathon(c *gin.Context) {
	caller, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建黑客松请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	minJudges := req.MinJudges
	if minJudges == 0 {
		minJudges = config.Get().Scoring.DefaultMinJudges
	}
	if minJudges < 1 || minJudges > 10 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("最少评委数必须在 1 到 10 之间"))
		return
	}

	// 短链是否已被占用
	var existing model.Hackathon
	err := database.DB.Where("url = ?", req.URL).First(&existing).Error
	if err == nil {
		log.Warn("短链已存在", "url", req.URL)
		response.Fail(c, response.ErrAlreadyExists.WithTips("该短链已被占用"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("数据库查询失败", "error", err, "url", req.URL)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	hackathon := model.Hackathon{
		Name:              req.Name,
		URL:               req.URL,
		Description:       req.Description,
		Rules:             req.Rules,
		Criteria:          req.Criteria,
		CreatorID:         caller.UserID,
		Verified:          true,
		MinJudgesRequired: minJudges,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&hackathon).Error; err != nil {
			return err
		}
		// 创建者自动成为自己活动的评委，这是创建操作的必要后置条件
		_, err := judge.Grant(tx, caller.UserID, hackathon.ID, caller.UserID)
		return err
	})
	if err != nil {
		log.Error("创建黑客松失败", "error", err, "url", req.URL)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("黑客松创建成功",
		"hackathon_id", hackathon.ID,
		"url", hackathon.URL,
		"creator_id", caller.UserID,
	)
	response.Success(c, hackathon)
}

// UpdateReq 定义更新黑客松请求的结构体，指针字段支持部分更新
type UpdateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Rules       *string `json:"rules"`
	Criteria    *string `json:"criteria"`
	IsFinished  *bool   `json:"is_finished"`
}

// UpdateHackathon 更新黑客松信息，仅创建者（或管理员）
func UpdateHackathon(c *gin.Context) {
	caller, _ := jwt.GetUserPayload(c)
	id := tools.ParseUintParam(c, "id")

	hackathon, authErr := auth.RequireHackathon(database.DB, caller, auth.LevelManager, id)
	if authErr != nil {
		response.Fail(c, authErr)
		return
	}

	var req UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Rules != nil {
		updates["rules"] = *req.Rules
	}
	if req.Criteria != nil {
		updates["criteria"] = *req.Criteria
	}
	if req.IsFinished != nil {
		updates["is_finished"] = *req.IsFinished
	}
	if len(updates) == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("没有需要更新的字段"))
		return
	}

	if err := database.DB.Model(hackathon).Updates(updates).Error; err != nil {
		log.Error("更新黑客松失败", "error", err, "hackathon_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("黑客松更新成功", "hackathon_id", id)
	response.Success(c, hackathon)
}

// MinJudgesReq 定义更新最少评委数请求的结构体
type MinJudgesReq struct {
	MinJudges int `json:"min_judges" binding:"required,min=1,max=10"`
}

// UpdateMinJudges 更新进入排行榜所需的最少评委数
func UpdateMinJudges(c *gin.Context) {
	caller, _ := jwt.GetUserPayload(c)
	id := tools.ParseUintParam(c, "id")

	hackathon, authErr := auth.RequireHackathon(database.DB, caller, auth.LevelManager, id)
	if authErr != nil {
		response.Fail(c, authErr)
		return
	}

	var req MinJudgesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if err := database.DB.Model(hackathon).
		Update("min_judges_required", req.MinJudges).Error; err != nil {
		log.Error("更新最少评委数失败", "error", err, "hackathon_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("最少评委数已更新", "hackathon_id", id, "min_judges", req.MinJudges)
	response.Success(c, gin.H{
		"hackathon_id": hackathon.ID,
		"min_judges":   req.MinJudges,
	})
}

// DeleteHackathon 删除黑客松，仅创建者（或管理员）
func DeleteHackathon(c *gin.Context) {
	caller, _ := jwt.GetUserPayload(c)
	id := tools.ParseUintParam(c, "id")

	hackathon, authErr := auth.RequireHackathon(database.DB, caller, auth.LevelManager, id)
	if authErr != nil {
		response.Fail(c, authErr)
		return
	}

	if err := database.DB.Delete(hackathon).Error; err != nil {
		log.Error("删除黑客松失败", "error", err, "hackathon_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("黑客松已删除", "hackathon_id", id)
	response.Success(c, nil)
}

// ListHackathons 获取黑客松列表。
// 组织者/管理员看自己创建的，普通用户看所有已审核的。
func ListHackathons(c *gin.Context) {
	caller, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	query := database.DB.Model(&model.Hackathon{})
	if caller.RoleID >= jwt.RoleOrganizer {
		query = query.Where("creator_id = ?", caller.UserID)
	} else {
		query = query.Where("verified = ?", true)
	}

	var hackathons []model.Hackathon
	if err := query.Order("created_at DESC").Find(&hackathons).Error; err != nil {
		log.Error("查询黑客松列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, hackathons)
}

// GetHackathon 黑客松公开详情页，按短链查询。
// 已登录用户顺带返回自己的参赛记录和是否为所有者。
func GetHackathon(c *gin.Context) {
	url := c.Param("url")
	if url == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少 url"))
		return
	}

	var hackathon model.Hackathon
	err := database.DB.Where("url = ?", url).First(&hackathon).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("黑客松不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	isOwner := false
	var userParticipation *model.Participation

	// 详情页公开，令牌可有可无
	if caller, ok := tryParseCaller(c); ok {
		isOwner = hackathon.CreatorID == caller.UserID || caller.RoleID >= jwt.RoleAdmin

		var p model.Participation
		err := database.DB.Where("hackathon_id = ? AND creator_id = ?", hackathon.ID, caller.UserID).
			First(&p).Error
		if err == nil {
			userParticipation = &p
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
	}

	response.Success(c, gin.H{
		"hackathon":          hackathon,
		"user_participation": userParticipation,
		"is_owner":           isOwner,
	})
}

// tryParseCaller 尝试从 Authorization 头解析用户，公开端点用
func tryParseCaller(c *gin.Context) (*jwt.Claims, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return nil, false
	}
	token := header[len(prefix):]

	// 已登出的令牌在公开端点同样失效，不再个性化返回
	if cache.IsTokenBlacklisted(c.Request.Context(), token) {
		return nil, false
	}
	return jwt.ParseToken(token)
}
