package quests

import (
	"fmt"

	"github.com/2beens/footsies/internal/skills"
)

type Module struct {
	ID            int          `json:"id"`
	Skill         skills.Skill `json:"skill"`
	Title         string       `json:"title"`
	Difficulty    string       `json:"difficulty"`
	XP            int          `json:"xp"`
	SkillXP       int          `json:"skillXp"`
	Duration      int          `json:"duration"`
	RequiredLevel int          `json:"requiredLevel"`
	Unlocked      bool         `json:"unlocked"`
}

type moduleTemplate struct {
	difficulty    string
	titleFormat   string
	xp            int
	skillXP       int
	minutes       int
	requiredLevel int
}

var moduleTemplates = []moduleTemplate{
	{"Beginner", "Basic %s Training", 20, 30, 15, 1},
	{"Intermediate", "Intermediate %s Drills", 30, 45, 20, 2},
	{"Advanced", "Advanced %s Mastery", 50, 75, 30, 3},
}

// Modules lists the training modules of a skill, unlocked by the skill level.
func Modules(skill skills.Skill, skillLevel int) []Module {
	modules := make([]Module, len(moduleTemplates))
	for i, t := range moduleTemplates {
		modules[i] = Module{
			ID:            i + 1,
			Skill:         skill,
			Title:         fmt.Sprintf(t.titleFormat, skill.Title()),
			Difficulty:    t.difficulty,
			XP:            t.xp,
			SkillXP:       t.skillXP,
			Duration:      t.minutes * 60,
			RequiredLevel: t.requiredLevel,
			Unlocked:      skillLevel >= t.requiredLevel,
		}
	}
	return modules
}

func moduleByID(skill skills.Skill, skillLevel, id int) (Module, error) {
	for _, m := range Modules(skill, skillLevel) {
		if m.ID == id {
			return m, nil
		}
	}
	return Module{}, fmt.Errorf("%w: module %d", ErrQuestNotFound, id)
}
