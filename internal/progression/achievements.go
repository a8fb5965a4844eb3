package progression

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/focusflow/internal/models"
)

// Input is everything an achievement predicate may look at.
type Input struct {
	Records       []models.StudyLog
	TotalHours    float64
	CurrentStreak int
}

// Achievement is a named badge unlocked when its predicate holds.
type Achievement struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Icon        string           `json:"icon"`
	Predicate   func(Input) bool `json:"-"`
}

// Status pairs an achievement with whether it is unlocked.
type Status struct {
	Achievement Achievement `json:"achievement"`
	Unlocked    bool        `json:"isUnlocked"`
}

const defaultBadgeIcon = "🎖️"

var rankIcons = map[string]string{
	"Novice":          "👶",
	"Initiate":        "🕯️",
	"Apprentice":      "🔨",
	"Student":         "🎒",
	"Scholar":         "📜",
	"Researcher":      "⚗️",
	"Specialist":      "🔬",
	"Expert":          "👓",
	"Elite":           "⚜️",
	"Master":          "🥋",
	"Grandmaster":     "🧘",
	"Virtuoso":        "🎻",
	"Visionary":       "🔮",
	"Luminary":        "💡",
	"Oracle":          "👁️",
	"Sage":            "🧙",
	"Titan":           "🗿",
	"Demigod":         "⚡",
	"Time Lord":       "⏳",
	"Grand Architect": "🏛️",
	"Eternal":         "🌌",
}

// Engine evaluates a fixed list of achievements.
type Engine struct {
	achievements []Achievement
}

// NewEngine builds the static achievements followed by one badge per rank
// above the base rank.
func NewEngine(ladder Ladder) *Engine {
	list := staticAchievements()
	for _, r := range ladder {
		if r.MinHours > 0 {
			list = append(list, rankBadge(r))
		}
	}
	return &Engine{achievements: list}
}

// Achievements returns the full list in declaration order.
func (e *Engine) Achievements() []Achievement {
	out := make([]Achievement, len(e.achievements))
	copy(out, e.achievements)
	return out
}

// Evaluate returns the unlock state of every achievement, locked ones
// included, in declaration order.
func (e *Engine) Evaluate(records []models.StudyLog, totalHours float64, currentStreak int) []Status {
	in := Input{Records: records, TotalHours: totalHours, CurrentStreak: currentStreak}
	out := make([]Status, len(e.achievements))
	for i, a := range e.achievements {
		out[i] = Status{Achievement: a, Unlocked: a.Predicate(in)}
	}
	return out
}

// Unlocked returns only the unlocked achievements.
func (e *Engine) Unlocked(records []models.StudyLog, totalHours float64, currentStreak int) []Achievement {
	var out []Achievement
	for _, s := range e.Evaluate(records, totalHours, currentStreak) {
		if s.Unlocked {
			out = append(out, s.Achievement)
		}
	}
	return out
}

func staticAchievements() []Achievement {
	return []Achievement{
		{
			ID: "first_step", Title: "First Step", Icon: "🌱",
			Description: "Log your first study session",
			Predicate:   func(in Input) bool { return len(in.Records) > 0 },
		},
		streakAchievement("streak_3", "Hat Trick", "⚡", 3),
		streakAchievement("streak_7", "Unstoppable", "🚀", 7),
		streakAchievement("streak_14", "On Fire", "☄️", 14),
		streakAchievement("streak_30", "Habitual", "📅", 30),
		{
			ID: "marathoner", Title: "Marathoner", Icon: "🏃",
			Description: "Study for 6 hours or more in a single day",
			Predicate:   anyRecord(func(l models.StudyLog) bool { return l.Hours >= 6 }),
		},
		{
			ID: "iron_mind", Title: "Iron Mind", Icon: "🧠",
			Description: "Study for 10 hours or more in a single day",
			Predicate:   anyRecord(func(l models.StudyLog) bool { return l.Hours >= 10 }),
		},
		{
			ID: "weekend_warrior", Title: "Weekender", Icon: "🎉",
			Description: "Log a session on a Saturday or Sunday",
			Predicate: anyRecord(func(l models.StudyLog) bool {
				wd := l.Date.Weekday()
				return wd == time.Saturday || wd == time.Sunday
			}),
		},
		{
			ID: "early_bird", Title: "Early Bird", Icon: "🌅",
			Description: `Log a session with "morning" in the notes`,
			Predicate:   notesContain("morning"),
		},
		{
			ID: "night_owl", Title: "Night Owl", Icon: "🦉",
			Description: `Log a session with "night" in the notes`,
			Predicate:   notesContain("night"),
		},
	}
}

func streakAchievement(id, title, icon string, days int) Achievement {
	return Achievement{
		ID:          id,
		Title:       title,
		Icon:        icon,
		Description: fmt.Sprintf("Maintain a %d-day streak", days),
		Predicate:   func(in Input) bool { return in.CurrentStreak >= days },
	}
}

func anyRecord(match func(models.StudyLog) bool) func(Input) bool {
	return func(in Input) bool {
		for _, l := range in.Records {
			if match(l) {
				return true
			}
		}
		return false
	}
}

func notesContain(word string) func(Input) bool {
	return anyRecord(func(l models.StudyLog) bool {
		return strings.Contains(strings.ToLower(l.Notes), word)
	})
}

func rankBadge(r Rank) Achievement {
	threshold := r.MinHours
	return Achievement{
		ID:          "rank_badge_" + strings.ToLower(strings.Join(strings.Fields(r.Title), "_")),
		Title:       r.Title,
		Description: fmt.Sprintf("Reach %g total study hours", r.MinHours),
		Icon:        rankIcon(r.Title),
		Predicate:   func(in Input) bool { return in.TotalHours >= threshold },
	}
}

// rankIcon picks the icon of the longest keyword contained in title, so
// "Grandmaster" wins over "Master".
func rankIcon(title string) string {
	keys := make([]string, 0, len(rankIcons))
	for k := range rankIcons {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		if strings.Contains(title, k) {
			return rankIcons[k]
		}
	}
	return defaultBadgeIcon
}
