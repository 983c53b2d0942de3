package stats

import (
	"time"

	"github.com/2beens/footsies/internal/skills"
	"github.com/2beens/footsies/internal/training/session"

	log "github.com/sirupsen/logrus"
)

type SkillPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// PeriodPoint sums the training of a day or a week. Duration is in seconds.
type PeriodPoint struct {
	Label    string               `json:"label"`
	Duration int                  `json:"duration"`
	XP       map[skills.Skill]int `json:"xp"`
}

type Progress struct {
	Daily         map[skills.Skill][]SkillPoint `json:"daily"`
	LastWeek      []PeriodPoint                 `json:"lastWeek"`
	LastFourWeeks []PeriodPoint                 `json:"lastFourWeeks"`
}

// usable reports whether a session can take part in per-date aggregation.
func usable(s *session.Session) (time.Time, bool) {
	if s.Metrics == nil {
		return time.Time{}, false
	}
	date, err := time.Parse(session.DateLayout, s.Date)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// SkippedRecords counts the sessions the aggregations have to leave out.
func SkippedRecords(sessions []session.Session) int {
	n := 0
	for i := range sessions {
		if _, ok := usable(&sessions[i]); !ok || sessions[i].Timestamp.IsZero() {
			n++
		}
	}
	return n
}

// SkillProgress builds gap-free per-skill series by session date.
// Malformed records are logged and left out.
func SkillProgress(sessions []session.Session, skillList []skills.Skill, now time.Time) Progress {
	today := startOfDay(now)

	type dayTotals struct {
		duration int
		xp       map[skills.Skill]int
	}
	byDate := map[string]*dayTotals{}
	for i := range sessions {
		s := &sessions[i]
		date, ok := usable(s)
		if !ok {
			log.Warnf("skill progress: session [%s] has date [%s] / metrics %v, skipping", s.ID, s.Date, s.Metrics)
			continue
		}
		key := date.Format(session.DateLayout)
		totals, ok := byDate[key]
		if !ok {
			totals = &dayTotals{xp: map[skills.Skill]int{}}
			byDate[key] = totals
		}
		totals.duration += s.Duration
		for skill, xp := range s.Metrics {
			totals.xp[skill] += xp
		}
	}

	emptyXP := func() map[skills.Skill]int {
		m := make(map[skills.Skill]int, len(skillList))
		for _, skill := range skillList {
			m[skill] = 0
		}
		return m
	}

	p := Progress{
		Daily: make(map[skills.Skill][]SkillPoint, len(skillList)),
	}
	for _, skill := range skillList {
		points := make([]SkillPoint, 30)
		for i := range points {
			date := today.AddDate(0, 0, -(29 - i)).Format(session.DateLayout)
			points[i] = SkillPoint{Date: date}
			if totals, ok := byDate[date]; ok {
				points[i].Value = totals.xp[skill]
			}
		}
		p.Daily[skill] = points
	}

	p.LastWeek = make([]PeriodPoint, 7)
	for i := range p.LastWeek {
		d := today.AddDate(0, 0, -(6 - i))
		point := PeriodPoint{Label: d.Format("Mon"), XP: emptyXP()}
		if totals, ok := byDate[d.Format(session.DateLayout)]; ok {
			point.Duration = totals.duration
			for _, skill := range skillList {
				point.XP[skill] = totals.xp[skill]
			}
		}
		p.LastWeek[i] = point
	}

	weeks := lastWeeks(today, 4)
	p.LastFourWeeks = make([]PeriodPoint, len(weeks))
	for i, w := range weeks {
		point := PeriodPoint{Label: w.label(), XP: emptyXP()}
		for d := w.start; d.Before(w.end); d = d.AddDate(0, 0, 1) {
			totals, ok := byDate[d.Format(session.DateLayout)]
			if !ok {
				continue
			}
			point.Duration += totals.duration
			for _, skill := range skillList {
				point.XP[skill] += totals.xp[skill]
			}
		}
		p.LastFourWeeks[i] = point
	}

	return p
}
