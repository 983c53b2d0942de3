package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// ManualEntry is a session logged by hand after the fact. Duration is in
// minutes here and stored as seconds.
type ManualEntry struct {
	Title           string `json:"title" validate:"required,max=120"`
	DurationMinutes int    `json:"duration" validate:"min=1,max=300"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	SkillsFocus     string `json:"skillsFocus" validate:"required"`
	Intensity       int    `json:"intensity" validate:"min=1,max=10"`
	Notes           string `json:"notes" validate:"max=2000"`
}

func (e ManualEntry) Validate(registry *skills.Registry) error {
	e.Title = strings.TrimSpace(e.Title)
	e.SkillsFocus = strings.TrimSpace(e.SkillsFocus)
	if err := validateStruct(e); err != nil {
		return err
	}
	if focus := skills.Skill(strings.ToLower(e.SkillsFocus)); focus != DefaultSkillsFocus && !registry.IsValid(focus) {
		return fmt.Errorf("%w: %w: %s", ErrInvalidEntry, skills.ErrUnknownSkill, e.SkillsFocus)
	}
	return nil
}

type Service struct {
	store      Store
	profiles   profileRecorder
	statsCache cacheInvalidator
	registry   *skills.Registry
	clock      Clock
}

func NewService(
	store Store,
	profiles profileRecorder,
	statsCache cacheInvalidator,
	registry *skills.Registry,
	clock Clock,
) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		store:      store,
		profiles:   profiles,
		statsCache: statsCache,
		registry:   registry,
		clock:      clock,
	}
}

// LogManual stores a hand-logged session with no skill metrics and counts it on the profile.
func (s *Service) LogManual(ctx context.Context, userID string, entry ManualEntry) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.session.log_manual")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, ErrNoUser
	}
	if err := entry.Validate(s.registry); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	timestamp := now
	if entry.Date != now.Format(DateLayout) {
		// sessions logged for another day are placed at noon of that day
		day, _ := time.Parse(DateLayout, entry.Date)
		timestamp = day.Add(12 * time.Hour)
	}
	duration := entry.DurationMinutes * 60

	stored, err := s.store.Add(ctx, &Session{
		UserID:        userID,
		Timestamp:     timestamp,
		Date:          entry.Date,
		StartTime:     timestamp.Add(-time.Duration(duration) * time.Second),
		Duration:      duration,
		Metrics:       map[skills.Skill]int{},
		SkillsChanged: []skills.Skill{},
		Title:         strings.TrimSpace(entry.Title),
		SkillsFocus:   strings.ToLower(strings.TrimSpace(entry.SkillsFocus)),
		Intensity:     entry.Intensity,
		Notes:         entry.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("store manual session: %w", err)
	}

	if s.statsCache != nil {
		s.statsCache.Invalidate(userID)
	}

	// the stored record is the commit point, same as for tracked sessions
	if err := s.profiles.RecordSession(ctx, userID, timestamp); err != nil {
		log.Errorf("manual session [%s] stored, profile not updated: %s", stored.ID, err)
	}

	return stored, nil
}

func (s *Service) List(ctx context.Context, userID string, limit int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.session.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := s.store.List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
