package models

import "github.com/julianstephens/focusflow/internal/constants"

// Goals are hour targets for the current week, month and year.
type Goals struct {
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

// ApplyDefaultGoals fills unset targets with their defaults.
func ApplyDefaultGoals(g *Goals) {
	if g.Weekly <= 0 {
		g.Weekly = constants.DefaultWeeklyGoal
	}
	if g.Monthly <= 0 {
		g.Monthly = constants.DefaultMonthlyGoal
	}
	if g.Yearly <= 0 {
		g.Yearly = constants.DefaultYearlyGoal
	}
}
