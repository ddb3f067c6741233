package model

type Participation struct {
	Model
	HackathonID  uint   `gorm:"not null;index" json:"hackathon_id"`
	HackathonURL string `gorm:"type:varchar(100);not null;index" json:"hackathon_url"` // 冗余存一份短链，列表页按它查询
	CreatorID    uint   `gorm:"not null;index" json:"creator_id"`
	CreatorName  string `gorm:"type:varchar(100);not null" json:"creator_name"`
	Title        string `gorm:"type:varchar(200);not null" json:"title"`
	Description  string `gorm:"type:varchar(1000)" json:"description"`
	ProjectURL   string `gorm:"type:varchar(500);not null" json:"project_url"`
	IsReviewed   bool   `gorm:"default:false;not null" json:"is_reviewed"`
	// 评委手动标记的获奖标志，与排行榜推导出的 is_winner 互相独立
	IsWinner bool `gorm:"default:false;not null" json:"is_winner"`

	Hackathon Hackathon `gorm:"foreignKey:HackathonID;references:ID" json:"-"`
}
