//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/footsies/internal/misc"
	"github.com/2beens/footsies/internal/profile"
	"github.com/2beens/footsies/internal/quests"
	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/training/analysis"
	"github.com/2beens/footsies/internal/training/session"
	"github.com/2beens/footsies/internal/training/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestSignupAndLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.newUser(ctx, t)

	// same username again
	status, _ := s.do(ctx, "POST", "/signup", "", map[string]string{
		"username": user.profile.Username,
		"email":    "other@footsies.app",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.do(ctx, "POST", "/login", "", map[string]string{
		"username": user.profile.Username,
		"password": "bad-password",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	var p profile.Profile
	s.doInto(ctx, "GET", "/profile", user.token, nil, http.StatusOK, &p)
	assert.Equal(t, user.profile.ID, p.ID)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 100, p.XPThreshold)
	for _, skill := range skills.Defaults() {
		assert.Equal(t, 1, p.SkillLevels[skill], skill)
	}

	status, _ = s.do(ctx, "GET", "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestTrainingSessionFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.newUser(ctx, t)

	// login started an empty session: nothing to save yet
	var saveResp session.SaveResponse
	s.doInto(ctx, "POST", "/sessions/save", user.token, nil, http.StatusOK, &saveResp)
	assert.Equal(t, session.StatusNoop, saveResp.Status)

	var completion quests.Completion
	s.doInto(ctx, "POST", "/quests/3/complete", user.token, nil, http.StatusOK, &completion)
	assert.Equal(t, skills.Dribbling, completion.Skill)
	s.doInto(ctx, "POST", "/quests/7/complete", user.token, nil, http.StatusOK, &completion)
	assert.Equal(t, skills.Passing, completion.Skill)

	var current session.CurrentResponse
	s.doInto(ctx, "GET", "/sessions/current", user.token, nil, http.StatusOK, &current)
	require.True(t, current.Active)
	assert.Equal(t, map[skills.Skill]int{skills.Dribbling: 20, skills.Passing: 20}, current.Session.Metrics)
	assert.Equal(t, []skills.Skill{skills.Dribbling, skills.Passing}, current.Session.SkillsChanged)

	s.doInto(ctx, "POST", "/sessions/save", user.token, nil, http.StatusCreated, &saveResp)
	require.Equal(t, session.StatusSaved, saveResp.Status)
	require.NotNil(t, saveResp.Session)
	assert.NotEmpty(t, saveResp.Session.ID)
	assert.Equal(t, 20*60, saveResp.Session.Duration)

	// within the dedupe window
	s.doInto(ctx, "POST", "/sessions/end", user.token, nil, http.StatusOK, &saveResp)
	assert.Equal(t, session.StatusSkipped, saveResp.Status)

	var count int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		"SELECT count(*) FROM training_session WHERE user_id = $1", user.profile.ID,
	).Scan(&count))
	assert.Equal(t, 1, count)

	var p profile.Profile
	s.doInto(ctx, "GET", "/profile", user.token, nil, http.StatusOK, &p)
	assert.Equal(t, 1, p.TotalSessions)
	assert.NotNil(t, p.LastTrainingDate)
	assert.Equal(t, 20, p.XP)
	assert.Equal(t, 20, p.Skills[skills.Dribbling])

	var dashboard stats.Dashboard
	s.doInto(ctx, "GET", "/stats", user.token, nil, http.StatusOK, &dashboard)
	assert.Equal(t, 1, dashboard.Frequency.Total)
	require.NotNil(t, dashboard.LastSession)
	assert.Equal(t, saveResp.Session.ID, dashboard.LastSession.ID)
	require.NotNil(t, dashboard.LastImprovement[skills.Dribbling])
	assert.Equal(t, 0, dashboard.LastImprovement[skills.Dribbling].DaysSince)
	assert.Nil(t, dashboard.LastImprovement[skills.Shooting])

	var report analysis.Report
	s.doInto(ctx, "GET", "/analysis", user.token, nil, http.StatusOK, &report)
	assert.NotEmpty(t, report.Recommendations)
}

func (s *IntegrationTestSuite) TestManualSessionAndMetrics() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.newUser(ctx, t)
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(session.DateLayout)

	var stored session.Session
	s.doInto(ctx, "POST", "/sessions", user.token, session.ManualEntry{
		Title:           "Park kickabout",
		DurationMinutes: 45,
		Date:            yesterday,
		SkillsFocus:     string(skills.Shooting),
		Intensity:       7,
	}, http.StatusCreated, &stored)
	assert.Equal(t, 45*60, stored.Duration)
	assert.Equal(t, yesterday, stored.Date)
	assert.Equal(t, 12, stored.Timestamp.UTC().Hour())

	status, _ := s.do(ctx, "POST", "/sessions", user.token, session.ManualEntry{
		Title:           "Too long",
		DurationMinutes: 301,
		Date:            yesterday,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	var daily []stats.DailyMetrics
	s.doInto(ctx, "GET", "/stats/metrics?range=7d", user.token, nil, http.StatusOK, &daily)
	require.Len(t, daily, 1)
	assert.Equal(t, yesterday, daily[0].Date)
	assert.Equal(t, 1, daily[0].Sessions)
	assert.Equal(t, 45*60, daily[0].Duration)

	status, _ = s.do(ctx, "GET", "/stats/metrics?range=decade", user.token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestLogoutSavesSession() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.newUser(ctx, t)

	var board quests.Board
	s.doInto(ctx, "GET", "/quests", user.token, nil, http.StatusOK, &board)
	require.NotEmpty(t, board.Daily)

	quest := board.Daily[0]
	s.doInto(ctx, "POST", "/quests/"+strconv.Itoa(quest.ID)+"/complete", user.token, nil, http.StatusOK, nil)

	var logoutResp misc.LogoutResponse
	s.doInto(ctx, "POST", "/logout", user.token, nil, http.StatusOK, &logoutResp)
	assert.Equal(t, session.StatusSaved, logoutResp.Session)

	// the token is gone
	status, _ := s.do(ctx, "GET", "/profile", user.token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	var sessions []session.Session
	relogged := s.login(ctx, user)
	s.doInto(ctx, "GET", "/sessions?limit=5", relogged, nil, http.StatusOK, &sessions)
	require.Len(t, sessions, 1)
	assert.Equal(t, []skills.Skill{quest.Skill}, sessions[0].SkillsChanged)
}

func (s *IntegrationTestSuite) login(ctx context.Context, user *testUser) string {
	var loginResp misc.LoginResponse
	s.doInto(ctx, "POST", "/login", "", map[string]string{
		"username": user.profile.Username,
		"password": user.password,
	}, http.StatusOK, &loginResp)
	return loginResp.Token
}
