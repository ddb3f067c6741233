// Package auth 是资源级权限决策的唯一入口。
//
// 权限分两个独立的轴：全局角色（谁可以创建黑客松）和资源关系（谁拥有、谁可以
// 评审某个具体的黑客松）。两个轴都要查：只看角色会让任何组织者能管理任何
// 黑客松，只看关系会让创建者无法评审自己的活动。关系每次请求都现查数据库，
// 移除评委或转移所有权在下一个请求立即生效。
package auth

import (
	"errors"

	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/response"
	"github.com/raducarabat/hackcontrol/internal/model"
	"gorm.io/gorm"
)

// Level 是受保护操作声明的权限级别
type Level int

const (
	// LevelAuthenticated 仅要求已登录
	LevelAuthenticated Level = iota
	// LevelOrganizer 要求全局角色为 ORGANIZER 及以上
	LevelOrganizer
	// LevelManager 要求是目标黑客松的创建者
	LevelManager
	// LevelJudge 要求具有目标黑客松的评委资格（创建者天然具有）
	LevelJudge
)

// Require 按固定优先级评估权限，返回 nil 表示放行：
//  1. 未登录 → ErrUnauthorized
//  2. ADMIN → 放行（全局兜底，不查资源）
//  3. LevelOrganizer → 检查全局角色
//  4. LevelManager → 检查黑客松创建者
//  5. LevelJudge → 创建者或存在评委授权记录
//
// 关系级检查（4、5）缺少 hackathonID 时返回参数错误而不是 panic。
func Require(db *gorm.DB, caller *jwt.Claims, level Level, hackathonID uint) *response.Error {
	if caller == nil {
		return response.ErrUnauthorized
	}
	if caller.RoleID >= jwt.RoleAdmin {
		return nil
	}

	switch level {
	case LevelAuthenticated:
		return nil
	case LevelOrganizer:
		if caller.RoleID >= jwt.RoleOrganizer {
			return nil
		}
		return response.ErrForbidden
	case LevelManager, LevelJudge:
		_, err := RequireHackathon(db, caller, level, hackathonID)
		return err
	default:
		return response.ErrForbidden
	}
}

// RequireHackathon 评估关系级权限并返回查到的黑客松，
// 供后续逻辑复用，避免同一请求内查两次。
func RequireHackathon(db *gorm.DB, caller *jwt.Claims, level Level, hackathonID uint) (*model.Hackathon, *response.Error) {
	if caller == nil {
		return nil, response.ErrUnauthorized
	}
	if hackathonID == 0 {
		return nil, response.ErrInvalidRequest.WithTips("缺少 hackathon_id")
	}

	var hackathon model.Hackathon
	err := db.First(&hackathon, hackathonID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrNotFound.WithTips("黑客松不存在")
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}

	if caller.RoleID >= jwt.RoleAdmin {
		return &hackathon, nil
	}

	switch level {
	case LevelManager:
		if hackathon.CreatorID == caller.UserID {
			return &hackathon, nil
		}
		return nil, response.ErrForbidden
	case LevelJudge:
		if hackathon.CreatorID == caller.UserID {
			return &hackathon, nil
		}
		var count int64
		if err := db.Model(&model.Judge{}).
			Where("user_id = ? AND hackathon_id = ?", caller.UserID, hackathon.ID).
			Count(&count).Error; err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
		if count > 0 {
			return &hackathon, nil
		}
		return nil, response.ErrForbidden
	default:
		return nil, response.ErrForbidden
	}
}
