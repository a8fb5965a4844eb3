// Package reminder finds event reminders that are due.
package reminder

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/recurrence"
)

// Window is how long after its trigger time a reminder stays due.
const Window = constants.ReminderWindow

// Notice is a single due reminder.
type Notice struct {
	Key        string // occurrence key, "<event id>-<date>"
	Event      models.Event
	Occurrence calendar.Date
	StartsAt   time.Time
	TriggerAt  time.Time
}

func (n Notice) Title() string {
	return "Reminder: " + n.Event.Title
}

func (n Notice) Body() string {
	return fmt.Sprintf("Event starts in %d minutes.", n.Event.ReminderMinutes)
}

// OccurrenceKey identifies one occurrence of an event.
func OccurrenceKey(eventID string, day calendar.Date) string {
	return eventID + "-" + day.String()
}

// Due returns the reminders whose trigger time (event start minus
// ReminderMinutes) lies in [trigger, trigger+Window) at now. Events without a
// time or without a reminder are skipped. Results are ordered by start time.
func Due(events []models.Event, now time.Time) []Notice {
	loc := now.Location()
	today := calendar.FromTime(now)

	var out []Notice
	for _, e := range events {
		if e.Time == "" || e.ReminderMinutes <= 0 {
			continue
		}
		lead := time.Duration(e.ReminderMinutes) * time.Minute
		// A long lead time can trigger a reminder for an occurrence days ahead.
		horizon := int(lead/(24*time.Hour)) + 1
		def := e.Definition()
		for offset := 0; offset <= horizon; offset++ {
			day := today.AddDays(offset)
			if !recurrence.OccursOn(def, day) {
				continue
			}
			start, err := e.StartOn(day, loc)
			if err != nil {
				break
			}
			trigger := start.Add(-lead)
			if diff := now.Sub(trigger); diff >= 0 && diff < Window {
				out = append(out, Notice{
					Key:        OccurrenceKey(e.ID, day),
					Event:      e,
					Occurrence: day,
					StartsAt:   start,
					TriggerAt:  trigger,
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out
}

// Tracker remembers which occurrence keys have already been delivered. It is
// safe for concurrent use.
type Tracker struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]struct{})}
}

// Fresh returns the notices that have not been delivered yet. Nothing is
// marked; call Delivered once a notice has actually gone out.
func (t *Tracker) Fresh(notices []Notice) []Notice {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []Notice
	for _, n := range notices {
		if _, ok := t.seen[n.Key]; ok {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Delivered marks an occurrence key so later checks skip it.
func (t *Tracker) Delivered(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen[key] = struct{}{}
}

// Len returns the number of keys delivered.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
