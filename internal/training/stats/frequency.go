package stats

import (
	"math"
	"time"

	"github.com/2beens/footsies/internal/training/session"

	log "github.com/sirupsen/logrus"
)

const day = 24 * time.Hour

// Point is one bucket of a fixed-length series.
type Point struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type AvgPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Frequency struct {
	Total              int     `json:"total"`
	Daily              int     `json:"daily"`
	Weekly             int     `json:"weekly"`
	Monthly            int     `json:"monthly"`
	AvgSessionsPerWeek float64 `json:"avgSessionsPerWeek"`

	Hourly        []Point    `json:"hourly"`
	Daily7        []Point    `json:"daily7"`
	Daily30       []Point    `json:"daily30"`
	Monthly12     []Point    `json:"monthly12"`
	WeeklyAverage []AvgPoint `json:"weeklyAverage"`
}

// weeks in the 30 day window, ceil(30/7)
const monthWindowWeeks = 5

// TrainingFrequency counts sessions in rolling windows and fixed calendar
// series ending at now. All buckets are half-open [start, end) in UTC.
func TrainingFrequency(sessions []session.Session, now time.Time) Frequency {
	now = now.UTC()
	timestamps := make([]time.Time, 0, len(sessions))
	for _, s := range sessions {
		if s.Timestamp.IsZero() {
			log.Warnf("training frequency: session [%s] has no timestamp, skipping", s.ID)
			continue
		}
		timestamps = append(timestamps, s.Timestamp.UTC())
	}

	f := Frequency{
		Total:   len(timestamps),
		Daily:   countSince(timestamps, now.Add(-day)),
		Weekly:  countSince(timestamps, now.Add(-7*day)),
		Monthly: countSince(timestamps, now.Add(-30*day)),
	}
	f.AvgSessionsPerWeek = float64(f.Monthly) / monthWindowWeeks

	hourStart := now.Truncate(time.Hour)
	f.Hourly = make([]Point, 24)
	for i := range f.Hourly {
		start := hourStart.Add(-time.Duration(23-i) * time.Hour)
		f.Hourly[i] = Point{
			Label: start.Format("15:00"),
			Count: countIn(timestamps, start, start.Add(time.Hour)),
		}
	}

	today := startOfDay(now)
	f.Daily7 = dayPoints(timestamps, today, 7, "Mon")
	f.Daily30 = dayPoints(timestamps, today, 30, "1/2")

	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	f.Monthly12 = make([]Point, 12)
	for i := range f.Monthly12 {
		start := thisMonth.AddDate(0, -(11 - i), 0)
		f.Monthly12[i] = Point{
			Label: start.Format("Jan"),
			Count: countIn(timestamps, start, start.AddDate(0, 1, 0)),
		}
	}

	f.WeeklyAverage = make([]AvgPoint, 4)
	for i, w := range lastWeeks(today, 4) {
		f.WeeklyAverage[i] = AvgPoint{
			Label: w.label(),
			Value: round1(float64(countIn(timestamps, w.start, w.end)) / 7),
		}
	}

	return f
}

func dayPoints(timestamps []time.Time, today time.Time, days int, layout string) []Point {
	points := make([]Point, days)
	for i := range points {
		start := today.AddDate(0, 0, -(days - 1 - i))
		points[i] = Point{
			Label: start.Format(layout),
			Count: countIn(timestamps, start, start.AddDate(0, 0, 1)),
		}
	}
	return points
}

type window struct {
	start time.Time
	end   time.Time
}

func (w window) label() string {
	return w.start.Format("1/2") + "-" + w.end.AddDate(0, 0, -1).Format("1/2")
}

func (w window) contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

// lastWeeks returns n contiguous 7-day windows, oldest first, the last one ending with today.
func lastWeeks(today time.Time, n int) []window {
	end := today.AddDate(0, 0, 1)
	windows := make([]window, n)
	for i := n - 1; i >= 0; i-- {
		windows[i] = window{start: end.AddDate(0, 0, -7), end: end}
		end = windows[i].start
	}
	return windows
}

func countSince(timestamps []time.Time, since time.Time) int {
	n := 0
	for _, ts := range timestamps {
		if !ts.Before(since) {
			n++
		}
	}
	return n
}

func countIn(timestamps []time.Time, start, end time.Time) int {
	w := window{start: start, end: end}
	n := 0
	for _, ts := range timestamps {
		if w.contains(ts) {
			n++
		}
	}
	return n
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
