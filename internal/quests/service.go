package quests

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/footsies/internal/profile"
	"github.com/2beens/footsies/internal/progression"
	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/metrics"
	"github.com/2beens/footsies/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

const (
	completionQuest  = "quest"
	completionModule = "module"
)

type profileService interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
	ApplyTraining(ctx context.Context, userID string, skill skills.Skill, accountXP, skillXP int) (*profile.Profile, []progression.LevelUpEvent, error)
}

type trainingRecorder interface {
	RecordSkillTraining(userID string, skill skills.Skill, xpGained, durationDelta int) error
}

// Completion is the outcome of a finished quest or module.
type Completion struct {
	Title    string                     `json:"title"`
	Skill    skills.Skill               `json:"skill"`
	XP       int                        `json:"xp"`
	SkillXP  int                        `json:"skillXp"`
	Profile  *profile.Profile           `json:"profile"`
	LevelUps []progression.LevelUpEvent `json:"levelUps"`
	Messages []string                   `json:"messages"`
}

type ServiceParams struct {
	Profiles       profileService
	Tracker        trainingRecorder
	Registry       *skills.Registry
	MetricsManager *metrics.Manager
	NowFunc        func() time.Time
}

type Service struct {
	profiles       profileService
	tracker        trainingRecorder
	registry       *skills.Registry
	metricsManager *metrics.Manager
	nowFunc        func() time.Time
}

func NewService(params ServiceParams) *Service {
	nowFunc := params.NowFunc
	if nowFunc == nil {
		nowFunc = time.Now
	}
	registry := params.Registry
	if registry == nil {
		registry = skills.DefaultRegistry()
	}
	return &Service{
		profiles:       params.Profiles,
		tracker:        params.Tracker,
		registry:       registry,
		metricsManager: params.MetricsManager,
		nowFunc:        nowFunc,
	}
}

// Board returns today's quests for the user's account level.
func (s *Service) Board(ctx context.Context, userID string) (_ *Board, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.quests.board")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	board := Generate(userID, p.Level, s.nowFunc())
	return &board, nil
}

func (s *Service) Modules(ctx context.Context, userID, skillName string) (_ []Module, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.quests.modules")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	skill, err := s.registry.Parse(skillName)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return Modules(skill, p.SkillTrack(skill).Level), nil
}

func (s *Service) CompleteQuest(ctx context.Context, userID string, questID int) (_ *Completion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.quests.complete_quest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	q, err := QuestByID(questID)
	if err != nil {
		return nil, err
	}
	return s.complete(ctx, userID, completionQuest, q.Title, q.Skill, q.XP, q.SkillXP, q.Duration)
}

func (s *Service) CompleteModule(ctx context.Context, userID, skillName string, moduleID int) (_ *Completion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.quests.complete_module")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	skill, err := s.registry.Parse(skillName)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	m, err := moduleByID(skill, p.SkillTrack(skill).Level, moduleID)
	if err != nil {
		return nil, err
	}
	if !m.Unlocked {
		return nil, fmt.Errorf("%w: %s needs %s level %d", ErrModuleLocked, m.Title, skill, m.RequiredLevel)
	}
	return s.complete(ctx, userID, completionModule, m.Title, skill, m.XP, m.SkillXP, m.Duration)
}

func (s *Service) complete(
	ctx context.Context,
	userID, kind, title string,
	skill skills.Skill,
	xp, skillXP, duration int,
) (*Completion, error) {
	p, events, err := s.profiles.ApplyTraining(ctx, userID, skill, xp, skillXP)
	if err != nil {
		return nil, fmt.Errorf("apply training: %w", err)
	}

	// progression is already stored, the session only misses this entry
	if err := s.tracker.RecordSkillTraining(userID, skill, skillXP, duration); err != nil {
		log.Errorf("record %s [%s] for [%s] on session: %s", kind, title, userID, err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterCompletedTrainings.WithLabelValues(kind).Inc()
	}

	messages := make([]string, 0, len(events)+1)
	messages = append(messages, fmt.Sprintf("Completed: %s! +%d XP, +%d %s XP", title, xp, skillXP, skill.Title()))
	for _, e := range events {
		messages = append(messages, e.Message())
	}
	if events == nil {
		events = []progression.LevelUpEvent{}
	}

	return &Completion{
		Title:    title,
		Skill:    skill,
		XP:       xp,
		SkillXP:  skillXP,
		Profile:  p,
		LevelUps: events,
		Messages: messages,
	}, nil
}
