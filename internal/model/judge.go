package model

import "time"

// Judge 是能力授权记录：该用户可以给该黑客松的作品打分。
// 不使用软删除：移除评委后必须可以重新邀请，复合唯一索引不能被已删除行占用。
type Judge struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_judge_user_hackathon" json:"user_id"`
	HackathonID uint      `gorm:"not null;uniqueIndex:idx_judge_user_hackathon" json:"hackathon_id"`
	InvitedBy   uint      `gorm:"not null" json:"invited_by"`

	User      User      `gorm:"foreignKey:UserID;references:ID" json:"user"`
	Hackathon Hackathon `gorm:"foreignKey:HackathonID;references:ID" json:"-"`
}
