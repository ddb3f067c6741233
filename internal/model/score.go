package model

import "time"

// Score 是一位评委对一个作品的一次打分，取值 [1,10]。
// (judge_id, participation_id) 全局唯一，重复提交走 upsert 覆盖而不是新增行，
// 因此不使用软删除。
type Score struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	JudgeID         uint      `gorm:"not null;uniqueIndex:idx_score_judge_participation" json:"judge_id"`
	ParticipationID uint      `gorm:"not null;uniqueIndex:idx_score_judge_participation" json:"participation_id"`
	Score           int       `gorm:"not null" json:"score"`

	Judge         Judge         `gorm:"foreignKey:JudgeID;references:ID" json:"-"`
	Participation Participation `gorm:"foreignKey:ParticipationID;references:ID" json:"-"`
}
