package profile

import (
	"errors"
	"time"

	"github.com/2beens/footsies/internal/progression"
	"github.com/2beens/footsies/internal/skills"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSignup      = errors.New("invalid signup")
)

type Profile struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	XP          int `json:"xp"`
	Level       int `json:"level"`
	XPThreshold int `json:"xpThreshold"`

	Skills          map[skills.Skill]int `json:"skills"`
	SkillLevels     map[skills.Skill]int `json:"skillLevels"`
	SkillThresholds map[skills.Skill]int `json:"skillThresholds"`

	TotalSessions    int        `json:"totalSessions"`
	LastTrainingDate *time.Time `json:"lastTrainingDate"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// New returns a profile with the signup defaults for the account and every given skill.
func New(id, username, email, passwordHash string, skillList []skills.Skill, createdAt time.Time) *Profile {
	p := &Profile{
		ID:              id,
		Username:        username,
		Email:           email,
		PasswordHash:    passwordHash,
		XP:              progression.InitialXP,
		Level:           progression.InitialLevel,
		XPThreshold:     progression.InitialThreshold,
		Skills:          make(map[skills.Skill]int, len(skillList)),
		SkillLevels:     make(map[skills.Skill]int, len(skillList)),
		SkillThresholds: make(map[skills.Skill]int, len(skillList)),
		CreatedAt:       createdAt.UTC(),
	}
	p.EnsureSkills(skillList)
	return p
}

// EnsureSkills adds default tracks for skills registered after the profile was created.
func (p *Profile) EnsureSkills(skillList []skills.Skill) {
	if p.Skills == nil {
		p.Skills = map[skills.Skill]int{}
	}
	if p.SkillLevels == nil {
		p.SkillLevels = map[skills.Skill]int{}
	}
	if p.SkillThresholds == nil {
		p.SkillThresholds = map[skills.Skill]int{}
	}
	for _, s := range skillList {
		if _, ok := p.SkillLevels[s]; !ok {
			p.SetSkillTrack(s, progression.NewTrack())
		}
	}
}

func (p *Profile) AccountTrack() progression.Track {
	return progression.Track{
		Level:     p.Level,
		XP:        p.XP,
		Threshold: p.XPThreshold,
	}
}

func (p *Profile) SetAccountTrack(t progression.Track) {
	p.Level = t.Level
	p.XP = t.XP
	p.XPThreshold = t.Threshold
}

func (p *Profile) SkillTrack(s skills.Skill) progression.Track {
	level, ok := p.SkillLevels[s]
	if !ok {
		return progression.NewTrack()
	}
	return progression.Track{
		Level:     level,
		XP:        p.Skills[s],
		Threshold: p.SkillThresholds[s],
	}
}

func (p *Profile) SetSkillTrack(s skills.Skill, t progression.Track) {
	p.Skills[s] = t.XP
	p.SkillLevels[s] = t.Level
	p.SkillThresholds[s] = t.Threshold
}
