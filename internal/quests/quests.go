package quests

import (
	"errors"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/2beens/footsies/internal/skills"
)

var (
	ErrQuestNotFound = errors.New("quest not found")
	ErrModuleLocked  = errors.New("module locked")
)

// Quest is a catalogued exercise. XP goes to the account, SkillXP to Skill.
type Quest struct {
	ID          int          `json:"id"`
	Skill       skills.Skill `json:"skill"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	XP          int          `json:"xp"`
	SkillXP     int          `json:"skillXp"`
	// Duration in seconds
	Duration int `json:"duration"`
}

var catalogue = []Quest{
	{1, skills.Stamina, "Endurance Run", "Complete a 20-minute continuous run", 10, 20, 20 * 60},
	{2, skills.Stamina, "Sprint Repeats", "Perform 10 sets of 30-second sprints", 15, 25, 10 * 60},
	{3, skills.Dribbling, "Cone Dribbling", "Complete the cone dribbling course 5 times", 10, 20, 10 * 60},
	{4, skills.Dribbling, "Fast Footwork", "Practice quick touches for 10 minutes", 15, 25, 10 * 60},
	{5, skills.Shooting, "Target Practice", "Hit each corner of the goal 5 times", 12, 22, 10 * 60},
	{6, skills.Shooting, "Power Shots", "Score 10 goals from outside the box", 18, 28, 15 * 60},
	{7, skills.Passing, "Wall Passes", "Complete 50 wall passes accurately", 10, 20, 10 * 60},
	{8, skills.Passing, "Through Balls", "Practice through balls with moving targets", 15, 25, 15 * 60},
}

// Catalogue returns a copy of every known quest, by id.
func Catalogue() []Quest {
	return append([]Quest(nil), catalogue...)
}

func QuestByID(id int) (Quest, error) {
	for _, q := range catalogue {
		if q.ID == id {
			return q, nil
		}
	}
	return Quest{}, ErrQuestNotFound
}

func DailyQuestCount(level int) int {
	return min(3, level/2+1)
}

func WeeklyQuestCount(level int) int {
	return min(5, level/3+2)
}

type Board struct {
	Daily  []Quest `json:"daily"`
	Weekly []Quest `json:"weekly"`
}

// dealSeed hashes "<userID>|<UTC date>" with fnv64a.
func dealSeed(userID string, day time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(userID + "|" + day.UTC().Format("2006-01-02")))
	return int64(h.Sum64())
}

// Generate deals the daily and weekly quests for an account level. The deal
// is stable for one user within one UTC day.
func Generate(userID string, level int, day time.Time) Board {
	if level < 1 {
		level = 1
	}

	rnd := rand.New(rand.NewSource(dealSeed(userID, day)))

	shuffled := Catalogue()
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	daily := min(DailyQuestCount(level), len(shuffled))
	weekly := min(WeeklyQuestCount(level), len(shuffled)-daily)
	return Board{
		Daily:  shuffled[:daily],
		Weekly: shuffled[daily : daily+weekly],
	}
}
