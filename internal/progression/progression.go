package progression

import (
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("invalid progression input")

const (
	InitialLevel     = 1
	InitialXP        = 0
	InitialThreshold = 100
)

// Track is the (level, xp, threshold) state of one progressing quantity:
// the account itself, or a single skill.
// A settled track always satisfies 0 <= XP < Threshold.
type Track struct {
	Level     int `json:"level"`
	XP        int `json:"xp"`
	Threshold int `json:"threshold"`
}

func NewTrack() Track {
	return Track{
		Level:     InitialLevel,
		XP:        InitialXP,
		Threshold: InitialThreshold,
	}
}

func (t Track) Validate() error {
	if t.Level < 1 {
		return fmt.Errorf("%w: level %d < 1", ErrInvalidInput, t.Level)
	}
	if t.XP < 0 {
		return fmt.Errorf("%w: negative xp %d", ErrInvalidInput, t.XP)
	}
	if t.Threshold <= 0 {
		return fmt.Errorf("%w: threshold %d <= 0", ErrInvalidInput, t.Threshold)
	}
	return nil
}

type Result struct {
	Track
	LevelsGained int `json:"levelsGained"`
}

// ApplyXpGain adds gained XP to the track and applies as many level-ups as
// the total covers, recomputing the threshold with the growth policy after
// each one. Once a policy keeps the threshold constant the remaining levels
// are counted with a single division.
func ApplyXpGain(track Track, gained int, policy GrowthPolicy) (Result, error) {
	if policy == nil {
		return Result{}, fmt.Errorf("%w: nil growth policy", ErrInvalidInput)
	}
	if gained < 0 {
		return Result{}, fmt.Errorf("%w: negative xp gain %d", ErrInvalidInput, gained)
	}
	if err := track.Validate(); err != nil {
		return Result{}, err
	}

	level := track.Level
	threshold := track.Threshold
	total := track.XP + gained
	levelsGained := 0

	for total >= threshold {
		total -= threshold
		level++
		levelsGained++

		next := policy.NextThreshold(level, threshold)
		if next <= 0 {
			return Result{}, fmt.Errorf("%w: growth policy produced threshold %d for level %d", ErrInvalidInput, next, level)
		}
		if c, ok := policy.(constantPolicy); ok && c.constant() && next == threshold {
			// the threshold stays put, take the remaining levels in one step
			levels := total / threshold
			total -= levels * threshold
			level += levels
			levelsGained += levels
		}
		threshold = next
	}

	return Result{
		Track: Track{
			Level:     level,
			XP:        total,
			Threshold: threshold,
		},
		LevelsGained: levelsGained,
	}, nil
}
