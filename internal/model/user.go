package model

type User struct {
	Model
	Username string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Avatar   string `gorm:"type:varchar(255)" json:"avatar"`
	RoleID   int    `gorm:"default:0;not null" json:"role_id"`
}
