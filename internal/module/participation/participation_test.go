package participation

import (
	"strconv"
	"testing"

	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/response"
	"github.com/raducarabat/hackcontrol/internal/model"
	"github.com/raducarabat/hackcontrol/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) *gorm.DB {
	db := test.NewDB(t)
	(&ModuleParticipation{}).Init()
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, roleID int) model.User {
	u := model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Name:     username,
		RoleID:   roleID,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createHackathon(t *testing.T, db *gorm.DB, creatorID uint, url string) model.Hackathon {
	h := model.Hackathon{
		Name:              url,
		URL:               url,
		CreatorID:         creatorID,
		Verified:          true,
		MinJudgesRequired: 2,
	}
	require.NoError(t, db.Create(&h).Error)
	return h
}

func payload(u model.User) test.Option {
	return test.WithPayload(jwt.Payload{UserID: u.ID, Username: u.Username, RoleID: u.RoleID})
}

func TestCreateParticipation(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	maker := createUser(t, db, "maker", jwt.RoleUser)
	createHackathon(t, db, owner.ID, "hack")

	resp := test.DoRequest(t, CreateParticipation, CreateReq{
		HackathonURL: "hack",
		Title:        "My Project",
		ProjectURL:   "https://github.com/maker/project",
	}, payload(maker))
	test.NoError(t, resp)

	var p model.Participation
	test.DecodeData(t, resp, &p)
	require.Equal(t, maker.ID, p.CreatorID)
	require.Equal(t, maker.Username, p.CreatorName)
	require.Equal(t, "hack", p.HackathonURL)
}

func TestCreateParticipationOnePerUser(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	maker := createUser(t, db, "maker", jwt.RoleUser)
	createHackathon(t, db, owner.ID, "hack")

	req := CreateReq{
		HackathonURL: "hack",
		Title:        "My Project",
		ProjectURL:   "https://github.com/maker/project",
	}
	test.NoError(t, test.DoRequest(t, CreateParticipation, req, payload(maker)))

	resp := test.DoRequest(t, CreateParticipation, req, payload(maker))
	test.ErrorEqual(t, response.ErrAlreadyExists, resp)
}

func TestCreateParticipationFinished(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	maker := createUser(t, db, "maker", jwt.RoleUser)
	h := createHackathon(t, db, owner.ID, "hack")
	require.NoError(t, db.Model(&h).Update("is_finished", true).Error)

	resp := test.DoRequest(t, CreateParticipation, CreateReq{
		HackathonURL: "hack",
		Title:        "Too Late",
		ProjectURL:   "https://github.com/maker/project",
	}, payload(maker))
	test.ErrorEqual(t, response.ErrFinished, resp)
}

func TestCreateParticipationUnknownHackathon(t *testing.T) {
	db := setup(t)
	maker := createUser(t, db, "maker", jwt.RoleUser)

	resp := test.DoRequest(t, CreateParticipation, CreateReq{
		HackathonURL: "no-such",
		Title:        "Project",
		ProjectURL:   "https://github.com/maker/project",
	}, payload(maker))
	test.ErrorEqual(t, response.ErrNotFound, resp)
}

func TestUpdateParticipationByAuthor(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	maker := createUser(t, db, "maker", jwt.RoleUser)
	createHackathon(t, db, owner.ID, "hack")

	resp := test.DoRequest(t, CreateParticipation, CreateReq{
		HackathonURL: "hack",
		Title:        "Before",
		ProjectURL:   "https://github.com/maker/project",
	}, payload(maker))
	test.NoError(t, resp)
	var p model.Participation
	test.DecodeData(t, resp, &p)

	title := "After"
	test.NoError(t, test.DoRequest(t, UpdateParticipation, UpdateReq{Title: &title},
		payload(maker), test.WithParam("id", strconv.FormatUint(uint64(p.ID), 10))))

	var updated model.Participation
	require.NoError(t, db.First(&updated, p.ID).Error)
	require.Equal(t, "After", updated.Title)
}

func TestUpdateParticipationForbiddenForStranger(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	maker := createUser(t, db, "maker", jwt.RoleUser)
	stranger := createUser(t, db, "stranger", jwt.RoleUser)
	createHackathon(t, db, owner.ID, "hack")

	resp := test.DoRequest(t, CreateParticipation, CreateReq{
		HackathonURL: "hack",
		Title:        "Project",
		ProjectURL:   "https://github.com/maker/project",
	}, payload(maker))
	test.NoError(t, resp)
	var p model.Participation
	test.DecodeData(t, resp, &p)

	title := "Hijacked"
	out := test.DoRequest(t, UpdateParticipation, UpdateReq{Title: &title},
		payload(stranger), test.WithParam("id", strconv.FormatUint(uint64(p.ID), 10)))
	test.ErrorEqual(t, response.ErrForbidden, out)
}

func TestUpdateParticipationReviewMarks(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	maker := createUser(t, db, "maker", jwt.RoleUser)
	createHackathon(t, db, owner.ID, "hack")

	resp := test.DoRequest(t, CreateParticipation, CreateReq{
		HackathonURL: "hack",
		Title:        "Project",
		ProjectURL:   "https://github.com/maker/project",
	}, payload(maker))
	test.NoError(t, resp)
	var p model.Participation
	test.DecodeData(t, resp, &p)

	id := strconv.FormatUint(uint64(p.ID), 10)
	reviewed := true

	// 作者本人没有评委资格，不能标记评审状态
	out := test.DoRequest(t, UpdateParticipation, UpdateReq{IsReviewed: &reviewed},
		payload(maker), test.WithParam("id", id))
	test.ErrorEqual(t, response.ErrForbidden, out)

	// 创建者天然具有评委资格
	test.NoError(t, test.DoRequest(t, UpdateParticipation, UpdateReq{IsReviewed: &reviewed},
		payload(owner), test.WithParam("id", id)))

	var updated model.Participation
	require.NoError(t, db.First(&updated, p.ID).Error)
	require.True(t, updated.IsReviewed)
}

func TestListByHackathonOrder(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	createHackathon(t, db, owner.ID, "hack")

	for _, name := range []string{"alice", "bob"} {
		u := createUser(t, db, name, jwt.RoleUser)
		test.NoError(t, test.DoRequest(t, CreateParticipation, CreateReq{
			HackathonURL: "hack",
			Title:        name + "-project",
			ProjectURL:   "https://github.com/" + name + "/project",
		}, payload(u)))
	}

	resp := test.DoRequest(t, ListByHackathon, nil, test.WithParam("url", "hack"))
	test.NoError(t, resp)

	var items []model.Participation
	test.DecodeData(t, resp, &items)
	require.Len(t, items, 2)
}
