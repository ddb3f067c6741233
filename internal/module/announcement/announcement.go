package announcement

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

// CreateReq 定义发布公告请求的结构体
type CreateReq struct {
	HackathonID uint   `json:"hackathon_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Content     string `json:"content" binding:"required"`
	Important   bool   `json:"important"`
}

// CreateAnnouncement 发布公告，仅黑客松创建者（或管理员）
func CreateAnnouncement(c *gin.Context) {
	caller, _ := jwt.GetUserPayload(c)

	var req CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定发布公告请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if authErr := auth.Require(database.DB, caller, auth.LevelManager, req.HackathonID); authErr != nil {
		response.Fail(c, authErr)
		return
	}

	announcement := model.Announcement{
		HackathonID: req.HackathonID,
		Title:       req.Title,
		Content:     req.Content,
		Important:   req.Important,
		CreatedBy:   caller.UserID,
	}
	if err := database.DB.Create(&announcement).Error; err != nil {
		log.Error("发布公告失败", "error", err, "hackathon_id", req.HackathonID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("公告已发布", "announcement_id", announcement.ID, "hackathon_id", req.HackathonID)
	response.Success(c, announcement)
}

// UpdateReq 定义更新公告请求的结构体，指针字段支持部分更新
type UpdateReq struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Important *bool   `json:"important"`
}

// UpdateAnnouncement 更新公告
func UpdateAnnouncement(c *gin.Context) {
	caller, _ := jwt.GetUserPayload(c)
	id := tools.ParseUintParam(c, "id")

	announcement, authErr := loadWithManagerCheck(caller, id)
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
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Important != nil {
		updates["important"] = *req.Important
	}
	if len(updates) == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("没有需要更新的字段"))
		return
	}

	if err := database.DB.Model(announcement).Updates(updates).Error; err != nil {
		log.Error("更新公告失败", "error", err, "announcement_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, announcement)
}

// DeleteAnnouncement 删除公告
func DeleteAnnouncement(c *gin.Context) {
	caller, _ := jwt.GetUserPayload(c)
	id := tools.ParseUintParam(c, "id")

	announcement, authErr := loadWithManagerCheck(caller, id)
	if authErr != nil {
		response.Fail(c, authErr)
		return
	}

	if err := database.DB.Delete(announcement).Error; err != nil {
		log.Error("删除公告失败", "error", err, "announcement_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("公告已删除", "announcement_id", id)
	response.Success(c, nil)
}

// ListByHackathon 获取某黑客松的公告，重要公告在前，其余按时间降序
func ListByHackathon(c *gin.Context) {
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

	var announcements []model.Announcement
	if err := database.DB.Where("hackathon_id = ?", hackathon.ID).
		Order("important DESC").
		Order("created_at DESC").
		Find(&announcements).Error; err != nil {
		log.Error("查询公告失败", "error", err, "hackathon_id", hackathon.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, announcements)
}

// loadWithManagerCheck 加载公告并检查调用者对所属黑客松的管理权
func loadWithManagerCheck(caller *jwt.Claims, id uint) (*model.Announcement, *response.Error) {
	if id == 0 {
		return nil, response.ErrInvalidRequest.WithTips("缺少 id")
	}

	var announcement model.Announcement
	err := database.DB.First(&announcement, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("公告不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	if authErr := auth.Require(database.DB, caller, auth.LevelManager, announcement.HackathonID); authErr != nil {
		return nil, authErr
	}
	return &announcement, nil
}
