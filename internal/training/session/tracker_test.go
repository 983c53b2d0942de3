package session

import (
	"testing"
	"time"

	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestTracker_InitializeSession_Defaults(t *testing.T) {
	clock := newTestClock()
	tracker := NewTracker(clock, skills.DefaultRegistry(), nil)

	require.NoError(t, tracker.InitializeSession("u1", Options{}))

	acc, ok := tracker.Current("u1")
	require.True(t, ok)
	assert.Equal(t, clock.now, acc.StartTime)
	assert.Equal(t, DefaultOptions(), acc.Options)
	assert.Empty(t, acc.Metrics)
	assert.Empty(t, acc.SkillsChanged)
	assert.Equal(t, 0, acc.TotalDuration)
}

func TestTracker_InitializeSession_Invalid(t *testing.T) {
	tracker := NewTracker(newTestClock(), nil, nil)

	assert.ErrorIs(t, tracker.InitializeSession("", Options{}), ErrNoUser)
	assert.ErrorIs(t, tracker.InitializeSession("u1", Options{Intensity: 11}), ErrInvalidEntry)
	assert.ErrorIs(t, tracker.InitializeSession("u1", Options{Date: "10/06/2024"}), ErrInvalidEntry)

	_, ok := tracker.Current("u1")
	assert.False(t, ok)
}

func TestTracker_RecordSkillTraining(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	tracker := NewTracker(newTestClock(), skills.DefaultRegistry(), metricsManager)

	// lazily created
	require.NoError(t, tracker.RecordSkillTraining("u1", skills.Shooting, 10, 300))
	require.NoError(t, tracker.RecordSkillTraining("u1", skills.Dribbling, 5, -20))
	require.NoError(t, tracker.RecordSkillTraining("u1", skills.Shooting, 15, 60))

	acc, ok := tracker.Current("u1")
	require.True(t, ok)
	assert.Equal(t, map[skills.Skill]int{skills.Shooting: 25, skills.Dribbling: 5}, acc.Metrics)
	assert.Equal(t, []skills.Skill{skills.Shooting, skills.Dribbling}, acc.SkillsChanged)
	assert.Equal(t, 360, acc.TotalDuration)
	assert.Equal(t, DefaultTitle, acc.Options.Title)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.GaugeActiveSessions))

	// the snapshot is a copy
	acc.Metrics[skills.Shooting] = 1000
	acc.SkillsChanged[0] = skills.Speed
	again, _ := tracker.Current("u1")
	assert.Equal(t, 25, again.Metrics[skills.Shooting])
	assert.Equal(t, skills.Shooting, again.SkillsChanged[0])

	assert.ErrorIs(t, tracker.RecordSkillTraining("", skills.Shooting, 1, 1), ErrNoUser)
	assert.ErrorIs(t, tracker.RecordSkillTraining("u1", "juggling", 1, 1), skills.ErrUnknownSkill)
	assert.ErrorIs(t, tracker.RecordSkillTraining("u1", skills.Speed, -1, 1), ErrInvalidEntry)

	// re-initializing discards the previous accumulator
	require.NoError(t, tracker.InitializeSession("u1", Options{Title: "Evening"}))
	acc, _ = tracker.Current("u1")
	assert.Empty(t, acc.SkillsChanged)
	assert.Equal(t, "Evening", acc.Options.Title)

	tracker.Clear("u1")
	_, ok = tracker.Current("u1")
	assert.False(t, ok)
	assert.Equal(t, float64(0), testutil.ToFloat64(metricsManager.GaugeActiveSessions))
}

func TestTracker_UsersAreIsolated(t *testing.T) {
	tracker := NewTracker(newTestClock(), nil, nil)

	require.NoError(t, tracker.RecordSkillTraining("u1", skills.Passing, 10, 0))
	require.NoError(t, tracker.RecordSkillTraining("u2", skills.Speed, 7, 0))

	acc1, _ := tracker.Current("u1")
	acc2, _ := tracker.Current("u2")
	assert.Equal(t, []skills.Skill{skills.Passing}, acc1.SkillsChanged)
	assert.Equal(t, []skills.Skill{skills.Speed}, acc2.SkillsChanged)
}

func TestTracker_SaveFailedMergesNewTraining(t *testing.T) {
	clock := newTestClock()
	tracker := NewTracker(clock, nil, nil)

	require.NoError(t, tracker.RecordSkillTraining("u1", skills.Passing, 10, 60))
	acc, status := tracker.beginSave("u1", clock.Now(), DefaultDedupeWindow)
	require.Empty(t, status)

	// training while the save is in flight
	_, status = tracker.beginSave("u1", clock.Now(), DefaultDedupeWindow)
	assert.Equal(t, StatusSkipped, status)
	require.NoError(t, tracker.RecordSkillTraining("u1", skills.Speed, 4, 30))
	require.NoError(t, tracker.RecordSkillTraining("u1", skills.Passing, 1, 0))

	tracker.saveFailed("u1", acc, false)

	merged, ok := tracker.Current("u1")
	require.True(t, ok)
	assert.Equal(t, map[skills.Skill]int{skills.Passing: 11, skills.Speed: 4}, merged.Metrics)
	assert.Equal(t, []skills.Skill{skills.Passing, skills.Speed}, merged.SkillsChanged)
	assert.Equal(t, 90, merged.TotalDuration)
}

func TestTracker_DropsIdleUsers(t *testing.T) {
	clock := newTestClock()
	tracker := NewTracker(clock, nil, nil)

	// never saved, nothing to remember once cleared
	require.NoError(t, tracker.InitializeSession("u1", Options{}))
	tracker.Clear("u1")
	assert.NotContains(t, tracker.users, "u1")

	// a noop save leaves no entry behind
	_, status := tracker.beginSave("u2", clock.Now(), DefaultDedupeWindow)
	assert.Equal(t, StatusNoop, status)
	assert.NotContains(t, tracker.users, "u2")

	// a discarded failed save of a never saved user
	require.NoError(t, tracker.RecordSkillTraining("u3", skills.Speed, 1, 0))
	acc, status := tracker.beginSave("u3", clock.Now(), DefaultDedupeWindow)
	require.Empty(t, status)
	tracker.saveFailed("u3", acc, true)
	assert.NotContains(t, tracker.users, "u3")

	// saved users stay until their dedupe window has passed
	require.NoError(t, tracker.RecordSkillTraining("u4", skills.Speed, 1, 0))
	_, status = tracker.beginSave("u4", clock.Now(), DefaultDedupeWindow)
	require.Empty(t, status)
	tracker.saveSucceeded("u4", clock.Now())
	tracker.Clear("u4")
	require.NoError(t, tracker.RecordSkillTraining("u5", skills.Speed, 1, 0))

	assert.Equal(t, 0, tracker.sweep(clock.Now(), DefaultDedupeWindow))
	assert.Contains(t, tracker.users, "u4")

	// throttled, the next sweep has to wait for the window
	clock.Advance(DefaultDedupeWindow - time.Second)
	assert.Equal(t, 0, tracker.sweep(clock.Now(), DefaultDedupeWindow))

	clock.Advance(time.Second)
	assert.Equal(t, 1, tracker.sweep(clock.Now(), DefaultDedupeWindow))
	assert.NotContains(t, tracker.users, "u4")
	// u5 still has training to save
	assert.Contains(t, tracker.users, "u5")
}
