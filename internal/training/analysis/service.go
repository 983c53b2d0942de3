package analysis

import (
	"context"
	"fmt"

	"github.com/2beens/footsies/internal/profile"
	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/telemetry/tracing"
	"github.com/2beens/footsies/internal/training/stats"
)

type profileGetter interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
}

type dashboardProvider interface {
	Dashboard(ctx context.Context, userID string) (*stats.Dashboard, error)
}

type Report struct {
	Imbalance       Imbalance        `json:"imbalance"`
	Recommendations []Recommendation `json:"recommendations"`
}

type SkillReport struct {
	Skill           skills.Skill     `json:"skill"`
	DaysSince       *int             `json:"daysSince"`
	Recommendations []Recommendation `json:"recommendations"`
}

type Service struct {
	profiles profileGetter
	stats    dashboardProvider
	registry *skills.Registry
}

func NewService(profiles profileGetter, stats dashboardProvider, registry *skills.Registry) *Service {
	if registry == nil {
		registry = skills.DefaultRegistry()
	}
	return &Service{
		profiles: profiles,
		stats:    stats,
		registry: registry,
	}
}

func (s *Service) Report(ctx context.Context, userID string) (_ *Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.analysis.report")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	dashboard, err := s.stats.Dashboard(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get dashboard: %w", err)
	}

	imbalance := SkillImbalance(p.SkillLevels, p.Skills)
	recs := TrainingRecommendations(dashboard.Frequency, imbalance, dashboard.StagnationDays(), s.registry.All())
	if recs == nil {
		recs = []Recommendation{}
	}

	return &Report{
		Imbalance:       imbalance,
		Recommendations: recs,
	}, nil
}

func (s *Service) SkillReport(ctx context.Context, userID, skillName string) (_ *SkillReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.analysis.skill_report")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	skill, err := s.registry.Parse(skillName)
	if err != nil {
		return nil, err
	}

	dashboard, err := s.stats.Dashboard(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get dashboard: %w", err)
	}

	report := &SkillReport{Skill: skill}
	days, ok := dashboard.StagnationDays()[skill]
	if ok {
		report.DaysSince = &days
	}
	report.Recommendations = SkillRecommendations(skill, days, ok)
	if report.Recommendations == nil {
		report.Recommendations = []Recommendation{}
	}
	return report, nil
}
