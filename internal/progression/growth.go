package progression

import (
	"fmt"
	"strings"
)

const (
	PolicyFlat    = "flat"
	PolicyFormula = "formula"

	DefaultFlatStep        = 20
	DefaultFormulaBase     = 100
	DefaultFormulaPerLevel = 20
)

// GrowthPolicy computes the XP threshold for a freshly reached level.
type GrowthPolicy interface {
	NextThreshold(level, currentThreshold int) int
}

// FlatGrowth raises the threshold by a fixed step on every level-up.
type FlatGrowth struct {
	Step int
}

func (g FlatGrowth) NextThreshold(_ int, currentThreshold int) int {
	return currentThreshold + g.Step
}

func (g FlatGrowth) constant() bool {
	return g.Step == 0
}

// LevelFormulaGrowth sets the threshold to Base + level*PerLevel.
type LevelFormulaGrowth struct {
	Base     int
	PerLevel int
}

func (g LevelFormulaGrowth) NextThreshold(level int, _ int) int {
	return g.Base + level*g.PerLevel
}

func (g LevelFormulaGrowth) constant() bool {
	return g.PerLevel == 0
}

// constantPolicy is implemented by policies that can keep the threshold fixed
// from one level to the next.
type constantPolicy interface {
	constant() bool
}

func DefaultPolicy() GrowthPolicy {
	return FlatGrowth{Step: DefaultFlatStep}
}

type PolicyParams struct {
	Name     string
	FlatStep int
	Base     int
	PerLevel int
}

func NewPolicy(params PolicyParams) (GrowthPolicy, error) {
	switch strings.ToLower(params.Name) {
	case "", PolicyFlat:
		step := params.FlatStep
		if step == 0 {
			step = DefaultFlatStep
		}
		if step < 0 {
			return nil, fmt.Errorf("flat growth step must not be negative: %d", step)
		}
		return FlatGrowth{Step: step}, nil
	case PolicyFormula:
		base, perLevel := params.Base, params.PerLevel
		if base == 0 && perLevel == 0 {
			base, perLevel = DefaultFormulaBase, DefaultFormulaPerLevel
		}
		if base <= 0 || perLevel < 0 {
			return nil, fmt.Errorf("invalid formula growth: base %d, per level %d", base, perLevel)
		}
		return LevelFormulaGrowth{Base: base, PerLevel: perLevel}, nil
	default:
		return nil, fmt.Errorf("unknown growth policy: %s", params.Name)
	}
}
