package stats

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/training/session"
)

var ErrInvalidRange = errors.New("invalid range")

// LastImprovement returns the whole days since the latest session that gained
// XP in skill. ok is false when no session did.
func LastImprovement(sessions []session.Session, skill skills.Skill, now time.Time) (days int, ok bool) {
	var latest time.Time
	for i := range sessions {
		s := &sessions[i]
		if s.Metrics[skill] <= 0 || s.Timestamp.IsZero() {
			continue
		}
		if !ok || s.Timestamp.After(latest) {
			latest = s.Timestamp
			ok = true
		}
	}
	if !ok {
		return 0, false
	}
	days = int(now.Sub(latest) / day)
	if days < 0 {
		days = 0
	}
	return days, true
}

type SessionSummary struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Date          string               `json:"date"`
	Time          string               `json:"time"`
	Duration      int                  `json:"duration"`
	Metrics       map[skills.Skill]int `json:"metrics"`
	SkillsChanged []skills.Skill       `json:"skillsChanged"`
}

// LastSession summarizes the most recent session by timestamp, nil if there is none.
func LastSession(sessions []session.Session) *SessionSummary {
	var latest *session.Session
	for i := range sessions {
		s := &sessions[i]
		if s.Timestamp.IsZero() {
			continue
		}
		if latest == nil || s.Timestamp.After(latest.Timestamp) {
			latest = s
		}
	}
	if latest == nil {
		return nil
	}
	return &SessionSummary{
		ID:            latest.ID,
		Title:         latest.Title,
		Date:          latest.Date,
		Time:          latest.Timestamp.UTC().Format("15:04"),
		Duration:      latest.Duration,
		Metrics:       latest.Metrics,
		SkillsChanged: latest.SkillsChanged,
	}
}

type Range string

const (
	Range7Days  Range = "7d"
	Range30Days Range = "30d"
	Range90Days Range = "90d"
	RangeYear   Range = "year"
	RangeAll    Range = "all"
)

func ParseRange(s string) (Range, error) {
	switch r := Range(strings.ToLower(strings.TrimSpace(s))); r {
	case Range7Days, Range30Days, Range90Days, RangeYear, RangeAll:
		return r, nil
	case "":
		return Range30Days, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidRange, s)
	}
}

// days covered by the range, 0 for all
func (r Range) days() int {
	switch r {
	case Range7Days:
		return 7
	case Range30Days:
		return 30
	case Range90Days:
		return 90
	case RangeYear:
		return 365
	default:
		return 0
	}
}

type DailyMetrics struct {
	Date         string               `json:"date"`
	Sessions     int                  `json:"sessions"`
	Duration     int                  `json:"duration"`
	AvgIntensity float64              `json:"avgIntensity"`
	XP           map[skills.Skill]int `json:"xp"`
}

// AggregateMetrics folds sessions into one row per date within the range, ascending by date.
func AggregateMetrics(sessions []session.Session, r Range, now time.Time) []DailyMetrics {
	var from time.Time
	if n := r.days(); n > 0 {
		from = startOfDay(now).AddDate(0, 0, -(n - 1))
	}

	type acc struct {
		row       DailyMetrics
		intensity int
	}
	byDate := map[string]*acc{}
	for i := range sessions {
		s := &sessions[i]
		date, ok := usable(s)
		if !ok || date.Before(from) {
			continue
		}
		a, ok := byDate[s.Date]
		if !ok {
			a = &acc{row: DailyMetrics{Date: s.Date, XP: map[skills.Skill]int{}}}
			byDate[s.Date] = a
		}
		a.row.Sessions++
		a.row.Duration += s.Duration
		a.intensity += s.Intensity
		for skill, xp := range s.Metrics {
			a.row.XP[skill] += xp
		}
	}

	rows := make([]DailyMetrics, 0, len(byDate))
	for _, a := range byDate {
		a.row.AvgIntensity = round1(float64(a.intensity) / float64(a.row.Sessions))
		rows = append(rows, a.row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})
	return rows
}
