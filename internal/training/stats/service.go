package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/metrics"
	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/internal/training/session"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte = 1024 * 1024

	DefaultCacheSizeMB = 10
	DefaultCacheTTL    = time.Minute
)

type SessionLister interface {
	List(ctx context.Context, userID string, limit int) ([]session.Session, error)
}

// Improvement is the gap since a skill last gained XP.
type Improvement struct {
	DaysSince int `json:"daysSince"`
}

type Dashboard struct {
	Frequency Frequency `json:"frequency"`
	Progress  Progress  `json:"progress"`
	// nil entries mean no session ever trained the skill
	LastImprovement map[skills.Skill]*Improvement `json:"lastImprovement"`
	LastSession     *SessionSummary               `json:"lastSession"`
	ComputedAt      time.Time                     `json:"computedAt"`
}

// StagnationDays returns the days since last improvement, for the skills that have one.
func (d *Dashboard) StagnationDays() map[skills.Skill]int {
	days := make(map[skills.Skill]int, len(d.LastImprovement))
	for skill, imp := range d.LastImprovement {
		if imp != nil {
			days[skill] = imp.DaysSince
		}
	}
	return days
}

type ServiceParams struct {
	Sessions       SessionLister
	Registry       *skills.Registry
	Clock          session.Clock
	CacheSizeMB    int
	CacheTTL       time.Duration
	MetricsManager *metrics.Manager
}

type Service struct {
	sessions       SessionLister
	registry       *skills.Registry
	clock          session.Clock
	cache          *freecache.Cache
	cacheTTL       time.Duration
	metricsManager *metrics.Manager
}

func NewService(params ServiceParams) *Service {
	cacheSizeMB := params.CacheSizeMB
	if cacheSizeMB <= 0 {
		cacheSizeMB = DefaultCacheSizeMB
	}
	cacheTTL := params.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	clock := params.Clock
	if clock == nil {
		clock = session.SystemClock{}
	}
	registry := params.Registry
	if registry == nil {
		registry = skills.DefaultRegistry()
	}

	return &Service{
		sessions:       params.Sessions,
		registry:       registry,
		clock:          clock,
		cache:          freecache.NewCache(cacheSizeMB * megabyte),
		cacheTTL:       cacheTTL,
		metricsManager: params.MetricsManager,
	}
}

func cacheKey(userID string) []byte {
	return []byte("dashboard::" + userID)
}

func (s *Service) Dashboard(ctx context.Context, userID string) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if cached, err := s.cache.Get(cacheKey(userID)); err == nil {
		dashboard := &Dashboard{}
		if err := json.Unmarshal(cached, dashboard); err == nil {
			log.Tracef("dashboard for [%s] found in cache", userID)
			return dashboard, nil
		} else {
			log.Errorf("unmarshal cached dashboard for [%s]: %s", userID, err)
		}
	}

	sessions, err := s.sessions.List(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	dashboard := s.compute(sessions)

	dashboardBytes, err := json.Marshal(dashboard)
	if err != nil {
		log.Errorf("marshal dashboard for [%s]: %s", userID, err)
		return dashboard, nil
	}
	if err := s.cache.Set(cacheKey(userID), dashboardBytes, int(s.cacheTTL.Seconds())); err != nil {
		log.Errorf("cache dashboard for [%s]: %s", userID, err)
	}

	return dashboard, nil
}

func (s *Service) compute(sessions []session.Session) *Dashboard {
	start := time.Now()
	defer func() {
		if s.metricsManager != nil {
			s.metricsManager.HistStatsComputeDuration.Observe(time.Since(start).Seconds())
		}
	}()

	if skipped := SkippedRecords(sessions); skipped > 0 && s.metricsManager != nil {
		s.metricsManager.CounterSkippedRecords.Add(float64(skipped))
	}

	now := s.clock.Now().UTC()
	skillList := s.registry.All()

	dashboard := &Dashboard{
		Frequency:       TrainingFrequency(sessions, now),
		Progress:        SkillProgress(sessions, skillList, now),
		LastImprovement: make(map[skills.Skill]*Improvement, len(skillList)),
		LastSession:     LastSession(sessions),
		ComputedAt:      now,
	}
	for _, skill := range skillList {
		if days, ok := LastImprovement(sessions, skill, now); ok {
			dashboard.LastImprovement[skill] = &Improvement{DaysSince: days}
		} else {
			dashboard.LastImprovement[skill] = nil
		}
	}
	return dashboard
}

// Metrics aggregates the user's sessions per date within r. Not cached.
func (s *Service) Metrics(ctx context.Context, userID string, r Range) (_ []DailyMetrics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.metrics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := s.sessions.List(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return AggregateMetrics(sessions, r, s.clock.Now()), nil
}

// Invalidate drops the cached dashboard of the user.
func (s *Service) Invalidate(userID string) {
	if s.cache.Del(cacheKey(userID)) {
		log.Tracef("dashboard cache for [%s] invalidated", userID)
	}
}
