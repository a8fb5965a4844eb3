package progression

import (
	"math"

	"github.com/julianstephens/focusflow/internal/constants"
)

// Level is the classification of a total-hours figure on a ladder.
type Level struct {
	Rank            Rank    `json:"rank"`
	Next            *Rank   `json:"nextRank,omitempty"`
	ProgressPercent float64 `json:"progress"`
	HoursToNext     float64 `json:"hoursToNext"`
	CurrentXP       int     `json:"currentXP"`
	NextLevelXP     int     `json:"nextLevelXP"`
}

// Classify returns the highest rank whose threshold totalHours has reached,
// along with progress toward the rank above it. At the top of the ladder
// progress is 100 and no hours remain.
func Classify(ladder Ladder, totalHours float64) Level {
	idx := 0
	for i, r := range ladder {
		if totalHours < r.MinHours {
			break
		}
		idx = i
	}

	lvl := Level{
		Rank:            ladder[idx],
		ProgressPercent: 100,
		CurrentXP:       int(math.Floor(totalHours * constants.XPPerHour)),
	}
	lvl.NextLevelXP = lvl.CurrentXP

	if idx+1 < len(ladder) {
		next := ladder[idx+1]
		span := next.MinHours - lvl.Rank.MinHours
		lvl.Next = &next
		lvl.ProgressPercent = clamp(100*(totalHours-lvl.Rank.MinHours)/span, 0, 100)
		lvl.HoursToNext = next.MinHours - totalHours
		lvl.NextLevelXP = int(next.MinHours * constants.XPPerHour)
	}

	return lvl
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
