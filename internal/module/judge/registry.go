package judge

import (
	"errors"
	"strings"

	"github.com/raducarabat/hackcontrol/internal/model"
	"gorm.io/gorm"
)

// Grant 给用户授予某黑客松的评委资格。
// 复合唯一键已存在时返回 gorm.ErrDuplicatedKey，由调用方翻译为业务错误；
// 重复邀请是调用方的错误而不是幂等操作，原始的 invited_by 保持不变。
func Grant(tx *gorm.DB, userID, hackathonID, invitedBy uint) (*model.Judge, error) {
	j := model.Judge{
		UserID:      userID,
		HackathonID: hackathonID,
		InvitedBy:   invitedBy,
	}
	if err := tx.Create(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

// Revoke 移除评委资格，不存在时返回 gorm.ErrRecordNotFound
func Revoke(tx *gorm.DB, userID, hackathonID uint) error {
	result := tx.Where("user_id = ? AND hackathon_id = ?", userID, hackathonID).
		Delete(&model.Judge{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsJudge 判断用户是否具有某黑客松的评委授权记录
func IsJudge(db *gorm.DB, userID, hackathonID uint) (bool, error) {
	var count int64
	err := db.Model(&model.Judge{}).
		Where("user_id = ? AND hackathon_id = ?", userID, hackathonID).
		Count(&count).Error
	return count > 0, err
}

// Resolve 通过 (userID, hackathonID) 查出评委记录。
// 打分服务用它在服务端解析 judge_id，调用方不能替别的评委提交分数。
func Resolve(db *gorm.DB, userID, hackathonID uint) (*model.Judge, error) {
	var j model.Judge
	err := db.Where("user_id = ? AND hackathon_id = ?", userID, hackathonID).First(&j).Error
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// IsDuplicateErr 判断是否为唯一键冲突。
// gorm 的方言层不保证统一转换成 ErrDuplicatedKey，这里兜底匹配常见驱动的报错文案。
func IsDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
