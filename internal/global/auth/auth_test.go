package auth

import (
	"testing"

	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/response"
	"github.com/raducarabat/hackcontrol/internal/model"
	"github.com/raducarabat/hackcontrol/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func claims(userID uint, roleID int) *jwt.Claims {
	return &jwt.Claims{Payload: jwt.Payload{UserID: userID, Username: "u", RoleID: roleID}}
}

func seedHackathon(t *testing.T, db *gorm.DB, creatorID uint) model.Hackathon {
	h := model.Hackathon{
		Name:              "hack",
		URL:               "hack",
		CreatorID:         creatorID,
		Verified:          true,
		MinJudgesRequired: 2,
	}
	require.NoError(t, db.Create(&h).Error)
	return h
}

func TestRequirePrecedence(t *testing.T) {
	db := test.NewDB(t)
	h := seedHackathon(t, db, 1)
	require.NoError(t, db.Create(&model.Judge{UserID: 5, HackathonID: h.ID, InvitedBy: 1}).Error)

	cases := []struct {
		name     string
		caller   *jwt.Claims
		level    Level
		id       uint
		expected *response.Error
	}{
		{"未登录最先拒绝", nil, LevelAuthenticated, 0, response.ErrUnauthorized},
		{"未登录不透露资源是否存在", nil, LevelManager, 424242, response.ErrUnauthorized},
		{"已登录即可", claims(9, jwt.RoleUser), LevelAuthenticated, 0, nil},
		{"普通用户不是组织者", claims(9, jwt.RoleUser), LevelOrganizer, 0, response.ErrForbidden},
		{"组织者角色放行", claims(9, jwt.RoleOrganizer), LevelOrganizer, 0, nil},
		{"创建者不需要组织者角色", claims(1, jwt.RoleUser), LevelManager, h.ID, nil},
		{"其他组织者不能管理别人的活动", claims(9, jwt.RoleOrganizer), LevelManager, h.ID, response.ErrForbidden},
		{"创建者天然是评委", claims(1, jwt.RoleUser), LevelJudge, h.ID, nil},
		{"有授权记录的评委放行", claims(5, jwt.RoleUser), LevelJudge, h.ID, nil},
		{"无授权记录拒绝", claims(9, jwt.RoleUser), LevelJudge, h.ID, response.ErrForbidden},
		{"管理员全局兜底", claims(9, jwt.RoleAdmin), LevelManager, h.ID, nil},
		{"管理员兜底优先于资源检查", claims(9, jwt.RoleAdmin), LevelOrganizer, 0, nil},
		{"关系检查缺少资源标识", claims(9, jwt.RoleOrganizer), LevelManager, 0, response.ErrInvalidRequest},
		{"资源不存在", claims(9, jwt.RoleOrganizer), LevelManager, 424242, response.ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Require(db, tc.caller, tc.level, tc.id)
			if tc.expected == nil {
				require.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			require.True(t, err.Is(tc.expected), "got code %d", err.GetCode())
		})
	}
}

func TestRequireHackathonReturnsResource(t *testing.T) {
	db := test.NewDB(t)
	h := seedHackathon(t, db, 1)

	got, err := RequireHackathon(db, claims(1, jwt.RoleUser), LevelManager, h.ID)
	require.Nil(t, err)
	require.Equal(t, h.ID, got.ID)
	require.Equal(t, h.URL, got.URL)
}

func TestRequireRevocationImmediate(t *testing.T) {
	db := test.NewDB(t)
	h := seedHackathon(t, db, 1)
	j := model.Judge{UserID: 5, HackathonID: h.ID, InvitedBy: 1}
	require.NoError(t, db.Create(&j).Error)

	require.Nil(t, Require(db, claims(5, jwt.RoleUser), LevelJudge, h.ID))

	// 授权每次现查，移除后下一次判定立即失效
	require.NoError(t, db.Delete(&j).Error)
	err := Require(db, claims(5, jwt.RoleUser), LevelJudge, h.ID)
	require.NotNil(t, err)
	require.True(t, err.Is(response.ErrForbidden))
}
