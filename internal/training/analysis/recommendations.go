package analysis

import (
	"fmt"
	"sort"

	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/training/stats"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

const (
	TypeFrequency  = "frequency"
	TypeImbalance  = "imbalance"
	TypeStagnation = "stagnation"
	TypeDrill      = "drill"
)

const (
	minSessionsPerWeek  = 3
	imbalanceThreshold  = 20
	stagnationDays      = 14
	skillStagnationDays = 7
	longStagnationDays  = 30
)

type Recommendation struct {
	Type       string   `json:"type"`
	Priority   Priority `json:"priority"`
	Message    string   `json:"message"`
	Actionable string   `json:"actionable"`
}

// TrainingRecommendations turns frequency, balance and stagnation into advice,
// most urgent first. skillOrder fixes the order of the stagnation entries.
func TrainingRecommendations(
	freq stats.Frequency,
	imbalance Imbalance,
	stagnation map[skills.Skill]int,
	skillOrder []skills.Skill,
) []Recommendation {
	var recs []Recommendation

	if freq.AvgSessionsPerWeek < minSessionsPerWeek {
		recs = append(recs, Recommendation{
			Type:       TypeFrequency,
			Priority:   PriorityHigh,
			Message:    "Increase your training frequency to at least 3 sessions per week for optimal improvement.",
			Actionable: "Schedule 3 training sessions this week.",
		})
	}

	if imbalance.Score > imbalanceThreshold {
		recs = append(recs, Recommendation{
			Type:       TypeImbalance,
			Priority:   PriorityHigh,
			Message:    fmt.Sprintf("Your %s skill is significantly lower than your %s skill.", imbalance.Weakest.Name, imbalance.Strongest.Name),
			Actionable: fmt.Sprintf("Focus on improving your %s skill in your next few sessions.", imbalance.Weakest.Name),
		})
	}

	for _, skill := range skillOrder {
		days, ok := stagnation[skill]
		if !ok || days <= stagnationDays {
			continue
		}
		recs = append(recs, Recommendation{
			Type:       TypeStagnation,
			Priority:   stagnationPriority(days),
			Message:    fmt.Sprintf("It's been %d days since you improved your %s skill.", days, skill),
			Actionable: fmt.Sprintf("Schedule a focused %s training session this week.", skill),
		})
	}

	sortByPriority(recs)
	return recs
}

// SkillRecommendations lists the drills for one skill, plus a stagnation
// reminder when it has not improved for over a week.
func SkillRecommendations(skill skills.Skill, daysSince int, ok bool) []Recommendation {
	var recs []Recommendation
	for _, d := range drillsFor(skill) {
		recs = append(recs, Recommendation{
			Type:       TypeDrill,
			Priority:   PriorityMedium,
			Message:    d.Title,
			Actionable: d.Description,
		})
	}

	if ok && daysSince > skillStagnationDays {
		recs = append(recs, Recommendation{
			Type:       TypeStagnation,
			Priority:   stagnationPriority(daysSince),
			Message:    fmt.Sprintf("It's been %d days since you improved your %s skill.", daysSince, skill),
			Actionable: fmt.Sprintf("Dedicate more time to %s training this week.", skill),
		})
	}
	return recs
}

func stagnationPriority(days int) Priority {
	if days > longStagnationDays {
		return PriorityHigh
	}
	return PriorityMedium
}

func sortByPriority(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.rank() < recs[j].Priority.rank()
	})
}
