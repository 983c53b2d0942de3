package skills

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrUnknownSkill = errors.New("unknown skill")

type Skill string

const (
	Dribbling Skill = "dribbling"
	Shooting  Skill = "shooting"
	Passing   Skill = "passing"
	Defending Skill = "defending"
	Speed     Skill = "speed"
	Stamina   Skill = "stamina"
)

var skillNameRegex = regexp.MustCompile(`^[a-z][a-z_]{1,31}$`)

// Defaults returns the built-in skills, in display order.
func Defaults() []Skill {
	return []Skill{Dribbling, Shooting, Passing, Defending, Speed, Stamina}
}

func (s Skill) String() string {
	return string(s)
}

// Title returns the skill name with the first letter upper-cased, e.g. "Dribbling".
func (s Skill) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Registry is the set of trainable skills known to the service: the built-in
// ones plus any extra skills listed in the config. It is never mutated after
// construction, so it is safe to share between goroutines.
type Registry struct {
	skills []Skill
	index  map[Skill]bool
}

func DefaultRegistry() *Registry {
	r, _ := NewRegistry()
	return r
}

func NewRegistry(extra ...string) (*Registry, error) {
	r := &Registry{
		index: map[Skill]bool{},
	}
	for _, s := range Defaults() {
		r.add(s)
	}

	for _, name := range extra {
		name = strings.ToLower(strings.TrimSpace(name))
		if !skillNameRegex.MatchString(name) {
			return nil, fmt.Errorf("invalid skill name [%s]", name)
		}
		if r.index[Skill(name)] {
			return nil, fmt.Errorf("duplicate skill [%s]", name)
		}
		r.add(Skill(name))
	}

	return r, nil
}

func (r *Registry) add(s Skill) {
	r.skills = append(r.skills, s)
	r.index[s] = true
}

// All returns a copy of the registered skills, built-in ones first.
func (r *Registry) All() []Skill {
	all := make([]Skill, len(r.skills))
	copy(all, r.skills)
	return all
}

func (r *Registry) IsValid(s Skill) bool {
	return r.index[s]
}

func (r *Registry) Parse(name string) (Skill, error) {
	s := Skill(strings.ToLower(strings.TrimSpace(name)))
	if !r.index[s] {
		return "", fmt.Errorf("%w: %s", ErrUnknownSkill, name)
	}
	return s, nil
}
