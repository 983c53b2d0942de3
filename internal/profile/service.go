package profile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/2beens/footsies/internal/progression"
	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/metrics"
	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const minPasswordLength = 6

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)

type Service struct {
	store          Store
	engine         *progression.Engine
	registry       *skills.Registry
	metricsManager *metrics.Manager

	// injectable for tests, bcrypt with the production cost is slow
	HashPasswordFunc  func(password string) (string, error)
	CheckPasswordFunc func(password, hash string) bool
	NowFunc           func() time.Time
}

func NewService(
	store Store,
	engine *progression.Engine,
	registry *skills.Registry,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		store:             store,
		engine:            engine,
		registry:          registry,
		metricsManager:    metricsManager,
		HashPasswordFunc:  pkg.HashPassword,
		CheckPasswordFunc: pkg.CheckPasswordHash,
		NowFunc:           time.Now,
	}
}

func (s *Service) Signup(ctx context.Context, username, email, password string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.signup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if !usernameRegex.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 3-32 letters, digits or _.-", ErrInvalidSignup)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidSignup)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidSignup, minPasswordLength)
	}

	passwordHash, err := s.HashPasswordFunc(password)
	if errors.Is(err, pkg.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password must have at most %d bytes", ErrInvalidSignup, pkg.MaxPasswordBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := New(uuid.NewString(), username, email, passwordHash, s.registry.All(), s.NowFunc())
	if err := s.store.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterSignups.Inc()
	}
	log.Infof("new profile created: %s [%s]", p.Username, p.ID)

	return p, nil
}

func (s *Service) IsUsernameAvailable(ctx context.Context, username string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.username_available")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exists, err := s.store.UsernameExists(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return !exists, nil
}

// Authenticate returns the profile when the password matches, ErrInvalidCredentials otherwise.
func (s *Service) Authenticate(ctx context.Context, username, password string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.authenticate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.store.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get profile by username: %w", err)
	}

	if !s.CheckPasswordFunc(password, p.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	p.EnsureSkills(s.registry.All())
	return p, nil
}

func (s *Service) Get(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.EnsureSkills(s.registry.All())
	return p, nil
}

// ApplyTraining adds XP to the account and to one skill and persists both
// tracks in a single store update. Returns the level-up events, in order.
func (s *Service) ApplyTraining(
	ctx context.Context,
	userID string,
	skill skills.Skill,
	accountXP, skillXP int,
) (_ *Profile, _ []progression.LevelUpEvent, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.apply_training")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("skill", skill.String()),
		attribute.Int("xp.account", accountXP),
		attribute.Int("xp.skill", skillXP),
	)

	if !s.registry.IsValid(skill) {
		return nil, nil, fmt.Errorf("%w: %s", skills.ErrUnknownSkill, skill)
	}

	var collector *progression.Collector
	p, err := s.store.UpdateProgress(ctx, userID, func(p *Profile) error {
		// a retried transaction must not keep the events of the failed attempt
		collector = &progression.Collector{}
		p.EnsureSkills(s.registry.All())

		accountTrack, err := s.engine.Apply(progression.KindAccount, "", p.AccountTrack(), accountXP, collector)
		if err != nil {
			return fmt.Errorf("account progression: %w", err)
		}
		skillTrack, err := s.engine.Apply(progression.KindSkill, skill, p.SkillTrack(skill), skillXP, collector)
		if err != nil {
			return fmt.Errorf("skill progression: %w", err)
		}

		p.SetAccountTrack(accountTrack)
		p.SetSkillTrack(skill, skillTrack)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("update progress: %w", err)
	}

	for _, event := range collector.Events {
		log.Debugf("user [%s]: %s", userID, event.Message())
		if s.metricsManager != nil {
			s.metricsManager.CounterLevelUps.WithLabelValues(string(event.Kind)).Inc()
		}
	}

	return p, collector.Events, nil
}

func (s *Service) RecordSession(ctx context.Context, userID string, at time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.record_session")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.store.RecordSession(ctx, userID, at); err != nil {
		return fmt.Errorf("record session on profile: %w", err)
	}
	return nil
}
