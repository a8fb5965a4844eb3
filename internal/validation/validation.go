package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictNegativeHours        ConflictType = "negative_hours"
	ConflictExcessiveHours       ConflictType = "excessive_hours"
	ConflictDuplicateLog         ConflictType = "duplicate_log"
	ConflictUnknownProject       ConflictType = "unknown_project"
	ConflictDuplicateProjectName ConflictType = "duplicate_project_name"
	ConflictInvalidDateTime      ConflictType = "invalid_datetime"
	ConflictNegativeReminder     ConflictType = "negative_reminder"
	ConflictEmptyTitle           ConflictType = "empty_title"
)

// MaxHoursPerDay is the most a single log can record.
const MaxHoursPerDay = 24

// Conflict represents a detected problem in stored records
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Titles or project names involved
	IDs         []string // IDs of records involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Merge appends the conflicts of other.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator validates stored records for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateLogs checks study logs against each other and the known projects.
func (v *Validator) ValidateLogs(logs []models.StudyLog, projects []models.Project) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[p.ID] = true
	}

	seen := make(map[string]int)
	for _, l := range logs {
		date := l.Date.String()

		if l.Hours < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeHours,
				Description: fmt.Sprintf("Log on %s has negative hours: %g", date, l.Hours),
				Date:        date,
				IDs:         []string{l.ProjectID},
			})
		} else if l.Hours > MaxHoursPerDay {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictExcessiveHours,
				Description: fmt.Sprintf("Log on %s records more than %d hours: %g", date, MaxHoursPerDay, l.Hours),
				Date:        date,
				IDs:         []string{l.ProjectID},
			})
		}

		if len(projects) > 0 && !known[l.ProjectID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownProject,
				Description: fmt.Sprintf("Log on %s references unknown project %q", date, l.ProjectID),
				Date:        date,
				IDs:         []string{l.ProjectID},
			})
		}

		seen[logKey(l)]++
	}

	keys := make([]string, 0, len(seen))
	for k, n := range seen {
		if n > 1 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		date, project, _ := strings.Cut(k, "|")
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateLog,
			Description: fmt.Sprintf("%d logs for %s in project %q", seen[k], date, project),
			Date:        date,
			IDs:         []string{project},
		})
	}

	return result
}

// ValidateProjects checks for duplicate project names.
func (v *Validator) ValidateProjects(projects []models.Project) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byName := make(map[string][]string)
	var order []string
	for _, p := range projects {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyTitle,
				Description: fmt.Sprintf("Project %s has an empty name", p.ID),
				IDs:         []string{p.ID},
			})
			continue
		}
		if _, ok := byName[name]; !ok {
			order = append(order, name)
		}
		byName[name] = append(byName[name], p.ID)
	}
	for _, name := range order {
		if ids := byName[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateProjectName,
				Description: fmt.Sprintf("Duplicate project name: %q (IDs: %v)", name, ids),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}
	return result
}

// ValidateEvents checks calendar events for empty titles, bad times and
// negative reminders.
func (v *Validator) ValidateEvents(events []models.Event) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, e := range events {
		date := e.Date.String()
		if strings.TrimSpace(e.Title) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyTitle,
				Description: fmt.Sprintf("Event %s on %s has an empty title", e.ID, date),
				Date:        date,
				IDs:         []string{e.ID},
			})
		}
		if e.Time != "" && !isValidTimeFormat(e.Time) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Event %q has invalid time: %s", e.Title, e.Time),
				Date:        date,
				Items:       []string{e.Title},
				IDs:         []string{e.ID},
			})
		}
		if e.ReminderMinutes < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeReminder,
				Description: fmt.Sprintf("Event %q has a negative reminder: %d minutes", e.Title, e.ReminderMinutes),
				Date:        date,
				Items:       []string{e.Title},
				IDs:         []string{e.ID},
			})
		}
	}
	return result
}

// ValidateCountdowns checks countdowns for empty titles and missing dates.
func (v *Validator) ValidateCountdowns(countdowns []models.Countdown) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, c := range countdowns {
		if strings.TrimSpace(c.Title) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyTitle,
				Description: fmt.Sprintf("Countdown %s has an empty title", c.ID),
				IDs:         []string{c.ID},
			})
		}
		if c.Date.IsZero() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Countdown %q has no date", c.Title),
				Items:       []string{c.Title},
				IDs:         []string{c.ID},
			})
		}
	}
	return result
}

// FixDuplicateLogs merges logs sharing a (date, project) pair by summing their
// hours and joining their notes. The returned slice keeps the order of first
// appearance.
func (v *Validator) FixDuplicateLogs(logs []models.StudyLog) ([]models.StudyLog, []FixAction) {
	var out []models.StudyLog
	var actions []FixAction
	index := make(map[string]int)
	merged := make(map[string]int)

	for _, l := range logs {
		k := logKey(l)
		i, ok := index[k]
		if !ok {
			index[k] = len(out)
			out = append(out, l)
			continue
		}
		out[i].Hours += l.Hours
		if l.Notes != "" {
			if out[i].Notes != "" {
				out[i].Notes += "; "
			}
			out[i].Notes += l.Notes
		}
		merged[k]++
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		date, project, _ := strings.Cut(k, "|")
		actions = append(actions, FixAction{
			Action: fmt.Sprintf("Merged %d duplicate log(s) for %s in project %q", merged[k], date, project),
			SourceConflict: Conflict{
				Type: ConflictDuplicateLog,
				Date: date,
				IDs:  []string{project},
			},
		})
	}
	return out, actions
}

func logKey(l models.StudyLog) string {
	return l.Date.String() + "|" + l.ProjectID
}

// isValidTimeFormat checks if a time string is in valid HH:MM format
func isValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}
