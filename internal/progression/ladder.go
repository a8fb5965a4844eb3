// Package progression maps cumulative study hours onto a rank ladder and
// evaluates achievement badges.
package progression

import (
	"errors"
	"fmt"
)

// Rank is one rung of the ladder. Color is a hex color used when rendering.
type Rank struct {
	Title    string  `json:"title"`
	MinHours float64 `json:"minHours"`
	Color    string  `json:"color"`
}

// Ladder is an ordered list of ranks with strictly increasing thresholds.
type Ladder []Rank

var ErrInvalidLadder = errors.New("invalid rank ladder")

// Validate checks that the ladder starts at zero hours and that thresholds
// strictly increase.
func (l Ladder) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: no ranks", ErrInvalidLadder)
	}
	if l[0].MinHours != 0 {
		return fmt.Errorf("%w: first rank %q must start at 0 hours", ErrInvalidLadder, l[0].Title)
	}
	for i := 1; i < len(l); i++ {
		if l[i].MinHours <= l[i-1].MinHours {
			return fmt.Errorf("%w: rank %q (%v) does not exceed %q (%v)",
				ErrInvalidLadder, l[i].Title, l[i].MinHours, l[i-1].Title, l[i-1].MinHours)
		}
	}
	return nil
}

// Top returns the highest rank.
func (l Ladder) Top() Rank {
	return l[len(l)-1]
}

// DefaultLadder returns the built-in 26-rank ladder.
func DefaultLadder() Ladder {
	return Ladder{
		{Title: "Novice I", MinHours: 0, Color: "#6b7280"},
		{Title: "Novice II", MinHours: 2, Color: "#4b5563"},
		{Title: "Novice III", MinHours: 5, Color: "#374151"},
		{Title: "Initiate", MinHours: 10, Color: "#78716c"},
		{Title: "Apprentice I", MinHours: 20, Color: "#10b981"},
		{Title: "Apprentice II", MinHours: 35, Color: "#059669"},
		{Title: "Student", MinHours: 50, Color: "#14b8a6"},
		{Title: "Scholar I", MinHours: 75, Color: "#06b6d4"},
		{Title: "Scholar II", MinHours: 100, Color: "#0891b2"},
		{Title: "Researcher", MinHours: 150, Color: "#0ea5e9"},
		{Title: "Specialist", MinHours: 200, Color: "#3b82f6"},
		{Title: "Expert I", MinHours: 300, Color: "#6366f1"},
		{Title: "Expert II", MinHours: 400, Color: "#4f46e5"},
		{Title: "Elite", MinHours: 500, Color: "#8b5cf6"},
		{Title: "Master", MinHours: 750, Color: "#a855f7"},
		{Title: "Grandmaster", MinHours: 1000, Color: "#d946ef"},
		{Title: "Virtuoso", MinHours: 1500, Color: "#ec4899"},
		{Title: "Visionary", MinHours: 2000, Color: "#f43f5e"},
		{Title: "Luminary", MinHours: 3000, Color: "#ef4444"},
		{Title: "Oracle", MinHours: 4000, Color: "#f97316"},
		{Title: "Sage", MinHours: 5000, Color: "#f59e0b"},
		{Title: "Titan", MinHours: 7500, Color: "#eab308"},
		{Title: "Demigod", MinHours: 10000, Color: "#84cc16"},
		{Title: "Time Lord", MinHours: 15000, Color: "#22c55e"},
		{Title: "Grand Architect", MinHours: 20000, Color: "#34d399"},
		{Title: "Eternal", MinHours: 30000, Color: "#ffffff"},
	}
}
