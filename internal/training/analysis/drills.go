package analysis

import (
	"github.com/2beens/footsies/internal/skills"
)

type Drill struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var drills = map[skills.Skill][]Drill{
	skills.Dribbling: {
		{"Cone Weaving", "Set up cones in a zigzag pattern and practice dribbling through them quickly."},
		{"Close Control", "Practice dribbling in tight spaces, focusing on quick touches and direction changes."},
	},
	skills.Shooting: {
		{"Target Practice", "Set up targets in the corners of the goal and aim for precision."},
		{"Power Shots", "Practice shooting with power from outside the box."},
	},
	skills.Passing: {
		{"Wall Passes", "Practice passing against a wall, focusing on accuracy and receiving."},
		{"Partner Passing", "Work with a partner on one-touch passing and movement."},
	},
	skills.Defending: {
		{"Shadow Defending", "Practice staying in front of an attacker without committing to a tackle."},
		{"Tackle Timing", "Work on timing your tackles to win the ball cleanly."},
	},
	skills.Speed: {
		{"Sprint Intervals", "Alternate between sprinting and jogging to build explosive speed."},
		{"Agility Ladder", "Use an agility ladder for quick footwork drills."},
	},
	skills.Stamina: {
		{"Endurance Runs", "Run at a moderate pace for extended periods to build stamina."},
		{"HIIT Training", "High-intensity interval training to improve cardiovascular fitness."},
	},
}

// drillsFor returns nil for skills outside the built-in set.
func drillsFor(skill skills.Skill) []Drill {
	return drills[skill]
}
