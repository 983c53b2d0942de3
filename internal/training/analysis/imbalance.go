package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/2beens/footsies/internal/skills"
)

const NoSkill = "None"

type SkillStanding struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Level int    `json:"level"`
}

var noneStanding = SkillStanding{Name: NoSkill}

type Imbalance struct {
	AvgLevel   float64                  `json:"avgLevel"`
	Strongest  SkillStanding            `json:"strongest"`
	Weakest    SkillStanding            `json:"weakest"`
	Score      float64                  `json:"score"`
	Deviations map[skills.Skill]float64 `json:"deviations"`
	Message    string                   `json:"message"`
}

// SkillImbalance measures how far the skill levels drift from their mean and
// picks the strongest and weakest skills. xp is the XP within the current level.
func SkillImbalance(levels map[skills.Skill]int, xp map[skills.Skill]int) Imbalance {
	if len(levels) == 0 {
		return Imbalance{
			Strongest:  noneStanding,
			Weakest:    noneStanding,
			Deviations: map[skills.Skill]float64{},
			Message:    "No skills trained yet.",
		}
	}

	// alphabetical, so ties resolve to the first name
	standings := make([]SkillStanding, 0, len(levels))
	sum := 0
	for skill, level := range levels {
		standings = append(standings, SkillStanding{
			Name:  string(skill),
			Value: xp[skill],
			Level: level,
		})
		sum += level
	}
	sort.Slice(standings, func(i, j int) bool {
		return standings[i].Name < standings[j].Name
	})
	avg := float64(sum) / float64(len(standings))

	im := Imbalance{
		AvgLevel:   avg,
		Strongest:  strongest(standings),
		Weakest:    weakest(standings),
		Deviations: make(map[skills.Skill]float64, len(standings)),
	}

	total := 0.0
	for _, s := range standings {
		d := math.Abs(float64(s.Level) - avg)
		im.Deviations[skills.Skill(s.Name)] = d
		total += d
	}
	if maxDeviation := avg * float64(len(standings)); maxDeviation > 0 {
		im.Score = math.Min(100, total/maxDeviation*100)
	}

	switch {
	case im.Score > 50:
		im.Message = fmt.Sprintf("Significant imbalance detected! Consider focusing on your %s skill to improve balance.", im.Weakest.Name)
	case im.Score > 20:
		im.Message = fmt.Sprintf("Moderate imbalance detected. Consider focusing on your %s skill to improve balance.", im.Weakest.Name)
	default:
		im.Message = "Good balance between skills."
	}
	return im
}

func progressed(s SkillStanding) bool {
	return s.Level > 1 || s.Value > 0
}

// strongest is the highest XP at the top level. None when nothing progressed.
func strongest(standings []SkillStanding) SkillStanding {
	anyProgress := false
	top := standings[0].Level
	for _, s := range standings {
		anyProgress = anyProgress || progressed(s)
		if s.Level > top {
			top = s.Level
		}
	}
	if !anyProgress {
		return noneStanding
	}

	best := SkillStanding{Value: -1}
	for _, s := range standings {
		if s.Level == top && s.Value > best.Value {
			best = s
		}
	}
	return best
}

// weakest is the lowest XP among trained skills at the lowest level that has
// a trained skill. None when nothing has XP.
func weakest(standings []SkillStanding) SkillStanding {
	var found *SkillStanding
	for i := range standings {
		s := &standings[i]
		if s.Value <= 0 {
			continue
		}
		if found == nil || s.Level < found.Level || (s.Level == found.Level && s.Value < found.Value) {
			found = s
		}
	}
	if found == nil {
		return noneStanding
	}
	return *found
}
