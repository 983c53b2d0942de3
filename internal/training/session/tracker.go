package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/metrics"
)

type userState struct {
	acc         *Accumulator
	lastSavedAt time.Time
	saving      bool
	// set when the session is cleared while a save is in flight, so a failed
	// save does not bring the accumulator back
	ended bool
}

// Tracker owns the accumulating session of every logged-in user.
// Within one user the last write wins.
type Tracker struct {
	mu             sync.Mutex
	clock          Clock
	registry       *skills.Registry
	users          map[string]*userState
	lastSweep      time.Time
	metricsManager *metrics.Manager
}

func NewTracker(clock Clock, registry *skills.Registry, metricsManager *metrics.Manager) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	if registry == nil {
		registry = skills.DefaultRegistry()
	}
	return &Tracker{
		clock:          clock,
		registry:       registry,
		users:          map[string]*userState{},
		metricsManager: metricsManager,
	}
}

func (t *Tracker) Clock() Clock {
	return t.clock
}

// InitializeSession starts a fresh accumulator, discarding an unsaved previous one.
func (t *Tracker) InitializeSession(userID string, opts Options) error {
	if userID == "" {
		return ErrNoUser
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(userID)
	st.acc = newAccumulator(t.clock.Now(), opts)
	t.updateGauge()
	return nil
}

// RecordSkillTraining adds gained XP and duration (seconds) to the user's
// accumulator, creating one with the default options when there is none.
func (t *Tracker) RecordSkillTraining(userID string, skill skills.Skill, xpGained, durationDelta int) error {
	if userID == "" {
		return ErrNoUser
	}
	if !t.registry.IsValid(skill) {
		return fmt.Errorf("%w: %s", skills.ErrUnknownSkill, skill)
	}
	if xpGained < 0 {
		return fmt.Errorf("%w: negative xp %d", ErrInvalidEntry, xpGained)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(userID)
	if st.acc == nil {
		st.acc = newAccumulator(t.clock.Now(), DefaultOptions())
		t.updateGauge()
	}
	st.acc.record(skill, xpGained, durationDelta)
	return nil
}

// Current returns a snapshot copy of the user's accumulator.
func (t *Tracker) Current(userID string) (Accumulator, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.users[userID]
	if !ok || st.acc == nil {
		return Accumulator{}, false
	}
	c := st.acc.copy()
	c.LastSavedAt = st.lastSavedAt
	return c, true
}

// Clear drops the user's accumulator.
func (t *Tracker) Clear(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.users[userID]
	if !ok {
		return
	}
	st.acc = nil
	if st.saving {
		st.ended = true
	} else if st.lastSavedAt.IsZero() {
		delete(t.users, userID)
	}
	t.updateGauge()
}

// PendingUsers lists the users holding unsaved training, sorted.
func (t *Tracker) PendingUsers() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var users []string
	for userID, st := range t.users {
		if st.acc != nil && len(st.acc.SkillsChanged) > 0 {
			users = append(users, userID)
		}
	}
	sort.Strings(users)
	return users
}

// beginSave checks the dedupe window and detaches the accumulator for saving.
// Training recorded while the save runs goes into a new accumulator.
func (t *Tracker) beginSave(userID string, now time.Time, dedupeWindow time.Duration) (*Accumulator, Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(userID)
	if st.saving {
		return nil, StatusSkipped
	}
	if !st.lastSavedAt.IsZero() && now.Sub(st.lastSavedAt) < dedupeWindow {
		return nil, StatusSkipped
	}
	if st.acc == nil || len(st.acc.SkillsChanged) == 0 {
		if st.acc == nil && st.lastSavedAt.IsZero() {
			delete(t.users, userID)
		}
		return nil, StatusNoop
	}

	acc := st.acc
	st.acc = nil
	st.saving = true
	t.updateGauge()
	return acc, ""
}

func (t *Tracker) saveSucceeded(userID string, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(userID)
	st.saving = false
	st.ended = false
	st.lastSavedAt = at
}

// saveFailed puts the detached accumulator back, merged with anything recorded
// meanwhile, unless discard is set or the session was ended during the save.
func (t *Tracker) saveFailed(userID string, acc *Accumulator, discard bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(userID)
	st.saving = false
	ended := st.ended
	st.ended = false
	if discard || ended {
		if st.acc == nil && st.lastSavedAt.IsZero() {
			delete(t.users, userID)
		}
		return
	}
	if st.acc != nil {
		acc.merge(st.acc)
	}
	st.acc = acc
	t.updateGauge()
}

// sweep drops the users with nothing tracked whose last save is older than
// idleFor. It runs at most once per idleFor.
func (t *Tracker) sweep(now time.Time, idleFor time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.lastSweep.IsZero() && now.Sub(t.lastSweep) < idleFor {
		return 0
	}
	t.lastSweep = now

	removed := 0
	for userID, st := range t.users {
		if st.acc != nil || st.saving {
			continue
		}
		if !st.lastSavedAt.IsZero() && now.Sub(st.lastSavedAt) < idleFor {
			continue
		}
		delete(t.users, userID)
		removed++
	}
	return removed
}

func (t *Tracker) state(userID string) *userState {
	st, ok := t.users[userID]
	if !ok {
		st = &userState{}
		t.users[userID] = st
	}
	return st
}

func (t *Tracker) updateGauge() {
	if t.metricsManager == nil {
		return
	}
	active := 0
	for _, st := range t.users {
		if st.acc != nil {
			active++
		}
	}
	t.metricsManager.GaugeActiveSessions.Set(float64(active))
}
