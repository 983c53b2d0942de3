package progression

import (
	"fmt"

	"github.com/2beens/footsies/internal/skills"
)

type Kind string

const (
	KindAccount Kind = "account"
	KindSkill   Kind = "skill"
)

type LevelUpEvent struct {
	Kind  Kind         `json:"kind"`
	Skill skills.Skill `json:"skill,omitempty"`
	Level int          `json:"level"`
}

func (e LevelUpEvent) Message() string {
	if e.Kind == KindSkill {
		return fmt.Sprintf("%s leveled up to Level %d!", e.Skill.Title(), e.Level)
	}
	return fmt.Sprintf("Account leveled up to Level %d!", e.Level)
}

// Notifier receives one event per level gained.
type Notifier interface {
	LevelUp(event LevelUpEvent)
}

// Collector is a Notifier that keeps the events in memory, in emit order.
type Collector struct {
	Events []LevelUpEvent
}

func (c *Collector) LevelUp(event LevelUpEvent) {
	c.Events = append(c.Events, event)
}

type Engine struct {
	policy GrowthPolicy
}

func NewEngine(policy GrowthPolicy) *Engine {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Engine{
		policy: policy,
	}
}

func (e *Engine) Policy() GrowthPolicy {
	return e.policy
}

// Apply runs ApplyXpGain for the account (skill is ignored) or for one skill,
// and notifies about every level reached on the way.
func (e *Engine) Apply(kind Kind, skill skills.Skill, track Track, gained int, notifier Notifier) (Track, error) {
	res, err := ApplyXpGain(track, gained, e.policy)
	if err != nil {
		return track, err
	}

	if notifier != nil {
		for i := 1; i <= res.LevelsGained; i++ {
			event := LevelUpEvent{
				Kind:  kind,
				Level: track.Level + i,
			}
			if kind == KindSkill {
				event.Skill = skill
			}
			notifier.LevelUp(event)
		}
	}

	return res.Track, nil
}
