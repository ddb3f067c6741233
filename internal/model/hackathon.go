package model

type Hackathon struct {
	Model
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	URL         string `gorm:"type:varchar(100);uniqueIndex;not null" json:"url"` // 唯一短链标识
	Description string `gorm:"type:varchar(1000)" json:"description"`
	Rules       string `gorm:"type:text" json:"rules"`
	Criteria    string `gorm:"type:text" json:"criteria"`
	IsFinished  bool   `gorm:"default:false;not null" json:"is_finished"` // 结束后禁止提交参赛作品和打分
	Verified    bool   `gorm:"default:false;not null" json:"verified"`
	CreatorID   uint   `gorm:"not null;index" json:"creator_id"`
	// 进入排行榜所需的最少独立评委打分数，始终 >= 1
	MinJudgesRequired int `gorm:"default:2;not null" json:"min_judges_required"`

	Creator User `gorm:"foreignKey:CreatorID;references:ID" json:"-"`
}
