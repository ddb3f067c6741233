package scoring

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/response"
	"github.com/raducarabat/hackcontrol/internal/model"
	"github.com/raducarabat/hackcontrol/internal/module/judge"
	"github.com/raducarabat/hackcontrol/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) *gorm.DB {
	db := test.NewDB(t)
	(&ModuleScoring{}).Init()
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

func createHackathon(t *testing.T, db *gorm.DB, creatorID uint, url string, minJudges int) model.Hackathon {
	h := model.Hackathon{
		Name:              url,
		URL:               url,
		CreatorID:         creatorID,
		Verified:          true,
		MinJudgesRequired: minJudges,
	}
	require.NoError(t, db.Create(&h).Error)
	return h
}

func createParticipation(t *testing.T, db *gorm.DB, h model.Hackathon, creator model.User, title string) model.Participation {
	p := model.Participation{
		HackathonID:  h.ID,
		HackathonURL: h.URL,
		CreatorID:    creator.ID,
		CreatorName:  creator.Name,
		Title:        title,
		ProjectURL:   "https://example.com/" + title,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func asJudge(t *testing.T, db *gorm.DB, user model.User, h model.Hackathon) *model.Judge {
	j, err := judge.Grant(db, user.ID, h.ID, h.CreatorID)
	require.NoError(t, err)
	return j
}

func payload(u model.User) test.Option {
	return test.WithPayload(jwt.Payload{UserID: u.ID, Username: u.Username, RoleID: u.RoleID})
}

func TestSubmitScoreOutOfRange(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	judgeUser := createUser(t, db, "judge", jwt.RoleUser)
	h := createHackathon(t, db, owner.ID, "hack", 2)
	asJudge(t, db, judgeUser, h)
	p := createParticipation(t, db, h, createUser(t, db, "maker", jwt.RoleUser), "proj")

	for _, score := range []int{0, 11, -3} {
		resp := test.DoRequest(t, SubmitScore, SubmitReq{
			ParticipationID: p.ID,
			Score:           score,
		}, payload(judgeUser))
		test.ErrorEqual(t, response.ErrInvalidRequest, resp)
	}

	// 被拒绝的提交绝不落库
	var count int64
	require.NoError(t, db.Model(&model.Score{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSubmitScoreUpsert(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	judgeUser := createUser(t, db, "judge", jwt.RoleUser)
	h := createHackathon(t, db, owner.ID, "hack", 2)
	j := asJudge(t, db, judgeUser, h)
	p := createParticipation(t, db, h, createUser(t, db, "maker", jwt.RoleUser), "proj")

	resp := test.DoRequest(t, SubmitScore, SubmitReq{ParticipationID: p.ID, Score: 5}, payload(judgeUser))
	test.NoError(t, resp)

	// 同一评委重复提交收敛成一行，后写覆盖先写
	resp = test.DoRequest(t, SubmitScore, SubmitReq{ParticipationID: p.ID, Score: 9}, payload(judgeUser))
	test.NoError(t, resp)

	var scores []model.Score
	require.NoError(t, db.Find(&scores).Error)
	require.Len(t, scores, 1)
	require.Equal(t, 9, scores[0].Score)
	require.Equal(t, j.ID, scores[0].JudgeID)
}

func TestSubmitScoreDistinctJudges(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	first := createUser(t, db, "first", jwt.RoleUser)
	second := createUser(t, db, "second", jwt.RoleUser)
	h := createHackathon(t, db, owner.ID, "hack", 2)
	j1 := asJudge(t, db, first, h)
	j2 := asJudge(t, db, second, h)
	p := createParticipation(t, db, h, createUser(t, db, "maker", jwt.RoleUser), "proj")

	test.NoError(t, test.DoRequest(t, SubmitScore, SubmitReq{ParticipationID: p.ID, Score: 7}, payload(first)))
	test.NoError(t, test.DoRequest(t, SubmitScore, SubmitReq{ParticipationID: p.ID, Score: 8}, payload(second)))

	// judge_id 由服务端解析，各自落在自己的行上
	var scores []model.Score
	require.NoError(t, db.Order("judge_id ASC").Find(&scores).Error)
	require.Len(t, scores, 2)
	require.Equal(t, j1.ID, scores[0].JudgeID)
	require.Equal(t, j2.ID, scores[1].JudgeID)
}

func TestSubmitScoreFinished(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	judgeUser := createUser(t, db, "judge", jwt.RoleUser)
	h := createHackathon(t, db, owner.ID, "hack", 2)
	asJudge(t, db, judgeUser, h)
	p := createParticipation(t, db, h, createUser(t, db, "maker", jwt.RoleUser), "proj")

	require.NoError(t, db.Model(&h).Update("is_finished", true).Error)

	resp := test.DoRequest(t, SubmitScore, SubmitReq{ParticipationID: p.ID, Score: 8}, payload(judgeUser))
	test.ErrorEqual(t, response.ErrFinished, resp)
}

func TestSubmitScoreNotJudge(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	outsider := createUser(t, db, "outsider", jwt.RoleUser)
	h := createHackathon(t, db, owner.ID, "hack", 2)
	p := createParticipation(t, db, h, createUser(t, db, "maker", jwt.RoleUser), "proj")

	resp := test.DoRequest(t, SubmitScore, SubmitReq{ParticipationID: p.ID, Score: 8}, payload(outsider))
	test.ErrorEqual(t, response.ErrForbidden, resp)
}

func TestSubmitScoreAdminWithoutJudgeRecord(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	admin := createUser(t, db, "admin", jwt.RoleAdmin)
	h := createHackathon(t, db, owner.ID, "hack", 2)
	p := createParticipation(t, db, h, createUser(t, db, "maker", jwt.RoleUser), "proj")

	// 管理员有权限但没有评委记录，无法解析 judge_id
	resp := test.DoRequest(t, SubmitScore, SubmitReq{ParticipationID: p.ID, Score: 8}, payload(admin))
	test.ErrorEqual(t, response.ErrNotFound, resp)
}

func TestSubmitScoreUnknownParticipation(t *testing.T) {
	db := setup(t)
	judgeUser := createUser(t, db, "judge", jwt.RoleUser)

	resp := test.DoRequest(t, SubmitScore, SubmitReq{ParticipationID: 999, Score: 8}, payload(judgeUser))
	test.ErrorEqual(t, response.ErrNotFound, resp)
}

func TestGetRankings(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	h := createHackathon(t, db, owner.ID, "hack", 2)

	judgeUsers := make([]model.User, 3)
	for i := range judgeUsers {
		judgeUsers[i] = createUser(t, db, fmt.Sprintf("judge%d", i), jwt.RoleUser)
		asJudge(t, db, judgeUsers[i], h)
	}

	maker := createUser(t, db, "maker", jwt.RoleUser)
	pa := createParticipation(t, db, h, maker, "A")
	pb := createParticipation(t, db, h, maker, "B")
	pc := createParticipation(t, db, h, maker, "C")

	score := func(u model.User, p model.Participation, value int) {
		test.NoError(t, test.DoRequest(t, SubmitScore, SubmitReq{ParticipationID: p.ID, Score: value}, payload(u)))
	}
	score(judgeUsers[0], pa, 8)
	score(judgeUsers[1], pa, 10)
	score(judgeUsers[0], pb, 9)
	score(judgeUsers[1], pb, 9)
	score(judgeUsers[2], pb, 9)
	score(judgeUsers[0], pc, 7)

	resp := test.DoRequest(t, GetRankings, nil, test.WithParam("hackathon_id", strconv.FormatUint(uint64(h.ID), 10)))
	test.NoError(t, resp)

	var result RankingResult
	test.DecodeData(t, resp, &result)

	require.Len(t, result.Eligible, 2)
	require.Equal(t, "B", result.Eligible[0].Participation.Title)
	require.Equal(t, 1, result.Eligible[0].Rank)
	require.True(t, result.Eligible[0].IsWinner)
	require.Equal(t, "A", result.Eligible[1].Participation.Title)
	require.Equal(t, 2, result.Eligible[1].Rank)

	require.Len(t, result.Ineligible, 1)
	require.Equal(t, "C", result.Ineligible[0].Participation.Title)
}

func TestGetRankingsUnknownHackathon(t *testing.T) {
	setup(t)
	resp := test.DoRequest(t, GetRankings, nil, test.WithParam("hackathon_id", "424242"))
	test.ErrorEqual(t, response.ErrNotFound, resp)
}

func TestGetProgress(t *testing.T) {
	db := setup(t)
	owner := createUser(t, db, "owner", jwt.RoleOrganizer)
	judgeUser := createUser(t, db, "judge", jwt.RoleUser)
	h := createHackathon(t, db, owner.ID, "hack", 1)
	asJudge(t, db, judgeUser, h)

	maker := createUser(t, db, "maker", jwt.RoleUser)
	pa := createParticipation(t, db, h, maker, "A")
	createParticipation(t, db, h, maker, "B")
	createParticipation(t, db, h, maker, "C")

	test.NoError(t, test.DoRequest(t, SubmitScore, SubmitReq{ParticipationID: pa.ID, Score: 6}, payload(judgeUser)))

	resp := test.DoRequest(t, GetProgress, nil,
		payload(judgeUser),
		test.WithParam("hackathon_id", strconv.FormatUint(uint64(h.ID), 10)),
	)
	test.NoError(t, resp)

	var progress ScoringProgress
	test.DecodeData(t, resp, &progress)
	require.Equal(t, 1, progress.Completed)
	require.Equal(t, 2, progress.Remaining)
	require.Equal(t, 33, progress.Percentage)
}
