package model

type Announcement struct {
	Model
	HackathonID uint   `gorm:"not null;index" json:"hackathon_id"`
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Content     string `gorm:"type:text;not null" json:"content"`
	Important   bool   `gorm:"default:false;not null" json:"important"`
	CreatedBy   uint   `gorm:"not null" json:"created_by"`
}
