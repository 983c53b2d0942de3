package session

import (
	"errors"
	"time"

	"github.com/2beens/footsies/internal/skills"
)

const (
	DateLayout = "2006-01-02"

	DefaultTitle       = "Training Session"
	DefaultSkillsFocus = "general"
	DefaultIntensity   = 5

	MinIntensity = 1
	MaxIntensity = 10
)

var (
	ErrInvalidEntry = errors.New("invalid session entry")
	ErrNoUser       = errors.New("no user")
	ErrUnknownOwner = errors.New("session owner not found")
)

// Session is a stored training record. Immutable once stored.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"`
	StartTime time.Time `json:"startTime"`
	// Duration in seconds
	Duration      int                  `json:"duration"`
	Metrics       map[skills.Skill]int `json:"metrics"`
	SkillsChanged []skills.Skill       `json:"skillsChanged"`

	Title       string `json:"title"`
	SkillsFocus string `json:"skillsFocus"`
	Intensity   int    `json:"intensity"`
	Notes       string `json:"notes"`
}

// Options are the descriptive fields of an accumulating session.
type Options struct {
	Title       string `json:"title" validate:"max=120"`
	SkillsFocus string `json:"skillsFocus" validate:"max=40"`
	Intensity   int    `json:"intensity" validate:"min=1,max=10"`
	Notes       string `json:"notes" validate:"max=2000"`
	// Date overrides the stored YYYY-MM-DD date, derived from the save time when empty.
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func DefaultOptions() Options {
	return Options{
		Title:       DefaultTitle,
		SkillsFocus: DefaultSkillsFocus,
		Intensity:   DefaultIntensity,
	}
}

// withDefaults fills the zero fields and validates the rest.
func (o Options) withDefaults() (Options, error) {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.SkillsFocus == "" {
		o.SkillsFocus = DefaultSkillsFocus
	}
	if o.Intensity == 0 {
		o.Intensity = DefaultIntensity
	}
	if err := validateStruct(o); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Accumulator is the in-memory session being built before it is persisted.
type Accumulator struct {
	StartTime     time.Time            `json:"startTime"`
	Metrics       map[skills.Skill]int `json:"metrics"`
	SkillsChanged []skills.Skill       `json:"skillsChanged"`
	// TotalDuration in seconds
	TotalDuration int       `json:"totalDuration"`
	Options       Options   `json:"options"`
	LastSavedAt   time.Time `json:"lastSavedAt,omitzero"`
}

func newAccumulator(start time.Time, opts Options) *Accumulator {
	return &Accumulator{
		StartTime: start,
		Metrics:   map[skills.Skill]int{},
		Options:   opts,
	}
}

func (a *Accumulator) record(skill skills.Skill, xpGained, durationDelta int) {
	if _, touched := a.Metrics[skill]; !touched {
		a.SkillsChanged = append(a.SkillsChanged, skill)
	}
	a.Metrics[skill] += xpGained
	if durationDelta > 0 {
		a.TotalDuration += durationDelta
	}
}

func (a *Accumulator) copy() Accumulator {
	c := *a
	c.Metrics = make(map[skills.Skill]int, len(a.Metrics))
	for k, v := range a.Metrics {
		c.Metrics[k] = v
	}
	c.SkillsChanged = append([]skills.Skill(nil), a.SkillsChanged...)
	return c
}

// merge folds other (recorded later) into a, keeping a's options and first-touch order.
func (a *Accumulator) merge(other *Accumulator) {
	for _, skill := range other.SkillsChanged {
		a.record(skill, other.Metrics[skill], 0)
	}
	a.TotalDuration += other.TotalDuration
	if other.StartTime.Before(a.StartTime) {
		a.StartTime = other.StartTime
	}
}

// snapshot builds the record to store, timestamped at now.
func (a *Accumulator) snapshot(userID string, now time.Time) *Session {
	c := a.copy()
	now = now.UTC()
	date := c.Options.Date
	if date == "" {
		date = now.Format(DateLayout)
	}
	return &Session{
		UserID:        userID,
		Timestamp:     now,
		Date:          date,
		StartTime:     c.StartTime.UTC(),
		Duration:      c.TotalDuration,
		Metrics:       c.Metrics,
		SkillsChanged: c.SkillsChanged,
		Title:         c.Options.Title,
		SkillsFocus:   c.Options.SkillsFocus,
		Intensity:     c.Options.Intensity,
		Notes:         c.Options.Notes,
	}
}
