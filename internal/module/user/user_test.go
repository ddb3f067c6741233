package user

import (
	"fmt"
	"testing"

	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/response"
	"github.com/raducarabat/hackcontrol/internal/model"
	"github.com/raducarabat/hackcontrol/test"
	"github.com/raducarabat/hackcontrol/tools"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) *gorm.DB {
	db := test.NewDB(t)
	(&ModuleUser{}).Init()
	return db
}

func TestRegisterAndLogin(t *testing.T) {
	db := setup(t)

	resp := test.DoRequest(t, Register, RegisterReq{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "secret-password",
		Name:     "Ana",
	})
	test.NoError(t, resp)

	var user model.User
	require.NoError(t, db.Where("username = ?", "ana").First(&user).Error)
	require.Equal(t, jwt.RoleUser, user.RoleID)
	// 密码只存哈希
	require.NotEqual(t, "secret-password", user.Password)
	require.True(t, tools.PasswordCompare("secret-password", user.Password))

	login := test.DoRequest(t, Login, LoginReq{Username: "ana", Password: "secret-password"})
	test.NoError(t, login)

	var data struct {
		Token  string `json:"token"`
		UserID uint   `json:"user_id"`
	}
	test.DecodeData(t, login, &data)
	require.Equal(t, user.ID, data.UserID)

	claims, valid := jwt.ParseToken(data.Token)
	require.True(t, valid)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, jwt.RoleUser, claims.RoleID)
}

func TestRegisterDuplicate(t *testing.T) {
	setup(t)

	req := RegisterReq{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "secret-password",
		Name:     "Ana",
	}
	test.NoError(t, test.DoRequest(t, Register, req))

	resp := test.DoRequest(t, Register, req)
	test.ErrorEqual(t, response.ErrAlreadyExists, resp)
}

func TestLoginWrongPassword(t *testing.T) {
	setup(t)

	test.NoError(t, test.DoRequest(t, Register, RegisterReq{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "secret-password",
		Name:     "Ana",
	}))

	// 用户不存在和密码错误返回同一个错误，不泄露账号是否存在
	resp := test.DoRequest(t, Login, LoginReq{Username: "ana", Password: "wrong"})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)

	resp = test.DoRequest(t, Login, LoginReq{Username: "nobody", Password: "wrong"})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)
}

func TestSearchExcludesExistingJudges(t *testing.T) {
	db := setup(t)

	var users []model.User
	for i := 0; i < 3; i++ {
		u := model.User{
			Username: fmt.Sprintf("ana%d", i),
			Email:    fmt.Sprintf("ana%d@example.com", i),
			Password: "x",
			Name:     "Ana",
		}
		require.NoError(t, db.Create(&u).Error)
		users = append(users, u)
	}

	h := model.Hackathon{Name: "hack", URL: "hack", CreatorID: users[0].ID, MinJudgesRequired: 2}
	require.NoError(t, db.Create(&h).Error)
	require.NoError(t, db.Create(&model.Judge{UserID: users[1].ID, HackathonID: h.ID, InvitedBy: users[0].ID}).Error)

	resp := test.DoRequest(t, Search, nil,
		test.WithQuery(fmt.Sprintf("query=ana&hackathon_id=%d", h.ID)))
	test.NoError(t, resp)

	var found []model.User
	test.DecodeData(t, resp, &found)
	require.Len(t, found, 2)
	for _, u := range found {
		require.NotEqual(t, users[1].ID, u.ID)
	}
}

func TestPromote(t *testing.T) {
	db := setup(t)

	u := model.User{Username: "ana", Email: "ana@example.com", Password: "x", Name: "Ana"}
	require.NoError(t, db.Create(&u).Error)

	resp := test.DoRequest(t, Promote, PromoteReq{UserID: u.ID})
	test.NoError(t, resp)

	var updated model.User
	require.NoError(t, db.First(&updated, u.ID).Error)
	require.Equal(t, jwt.RoleOrganizer, updated.RoleID)

	missing := test.DoRequest(t, Promote, PromoteReq{UserID: 999})
	test.ErrorEqual(t, response.ErrNotFound, missing)
}
