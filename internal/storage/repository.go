package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/models"
)

// ErrLastProject is returned when deleting the only remaining project.
var ErrLastProject = errors.New("cannot delete the last project")

// Repository reads and writes typed records as JSON documents in a KV.
// Each collection lives under its own key and is rewritten as a whole.
type Repository struct {
	kv    KV
	now   func() time.Time
	newID func() string
}

func NewRepository(kv KV) *Repository {
	return &Repository{
		kv:    kv,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock replaces the clock used for seeding and timestamps.
func (r *Repository) WithClock(now func() time.Time) *Repository {
	r.now = now
	return r
}

// KV returns the underlying store.
func (r *Repository) KV() KV {
	return r.kv
}

// NewID returns a fresh record ID.
func (r *Repository) NewID() string {
	return r.newID()
}

func (r *Repository) read(key string, dst interface{}) (bool, error) {
	raw, ok, err := r.kv.Get(key)
	if err != nil {
		return false, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// readOrDefault treats an unreadable document as missing. Only used for
// configuration documents that have defaults; collections go through read so
// a bad record is never overwritten.
func (r *Repository) readOrDefault(key string, dst interface{}) (bool, error) {
	ok, err := r.read(key, dst)
	if errors.Is(err, ErrCorrupt) {
		logger.Warn("Discarding unreadable document", "key", key, "error", err)
		return false, nil
	}
	return ok, err
}

func (r *Repository) write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.kv.Set(key, string(data))
}

// --- Logs ---

// Logs returns every study log sorted by date. Logs saved without a project
// are assigned to the default project and written back.
func (r *Repository) Logs() ([]models.StudyLog, error) {
	var logs []models.StudyLog
	if _, err := r.read(constants.KeyLogs, &logs); err != nil {
		return nil, err
	}

	migrated := false
	for i := range logs {
		if logs[i].ProjectID == "" {
			logs[i].ProjectID = constants.DefaultProjectID
			migrated = true
		}
	}
	if migrated {
		logger.Info("Assigned legacy logs to the default project")
		if err := r.write(constants.KeyLogs, logs); err != nil {
			return nil, err
		}
	}

	sortLogs(logs)
	return logs, nil
}

func sortLogs(logs []models.StudyLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})
}

// SaveLog inserts log or replaces the existing log for the same date and project.
func (r *Repository) SaveLog(log models.StudyLog) error {
	if log.Date.IsZero() {
		return fmt.Errorf("%w: log date is required", calendar.ErrInvalidDate)
	}
	if log.Hours < 0 {
		return fmt.Errorf("hours cannot be negative: %g", log.Hours)
	}
	if log.ProjectID == "" {
		log.ProjectID = constants.DefaultProjectID
	}

	logs, err := r.Logs()
	if err != nil {
		return err
	}

	replaced := false
	for i := range logs {
		if logs[i].Date == log.Date && logs[i].ProjectID == log.ProjectID {
			logs[i] = log
			replaced = true
			break
		}
	}
	if !replaced {
		logs = append(logs, log)
	}
	sortLogs(logs)
	return r.write(constants.KeyLogs, logs)
}

// Log returns the log for date and project.
func (r *Repository) Log(date calendar.Date, projectID string) (models.StudyLog, error) {
	logs, err := r.Logs()
	if err != nil {
		return models.StudyLog{}, err
	}
	for _, l := range logs {
		if l.Date == date && l.ProjectID == projectID {
			return l, nil
		}
	}
	return models.StudyLog{}, fmt.Errorf("log for %s in project %s: %w", date, projectID, ErrNotFound)
}

// DeleteLog removes the log for date and project.
func (r *Repository) DeleteLog(date calendar.Date, projectID string) error {
	logs, err := r.Logs()
	if err != nil {
		return err
	}
	kept := logs[:0]
	found := false
	for _, l := range logs {
		if l.Date == date && l.ProjectID == projectID {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return fmt.Errorf("log for %s in project %s: %w", date, projectID, ErrNotFound)
	}
	return r.write(constants.KeyLogs, kept)
}

// SaveLogs replaces the whole log collection.
func (r *Repository) SaveLogs(logs []models.StudyLog) error {
	out := append([]models.StudyLog(nil), logs...)
	sortLogs(out)
	return r.write(constants.KeyLogs, out)
}

// --- Projects ---

// Projects returns the saved projects. An empty or missing list is repaired
// with the default project.
func (r *Repository) Projects() ([]models.Project, error) {
	var projects []models.Project
	if _, err := r.read(constants.KeyProjects, &projects); err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		projects = []models.Project{models.DefaultProject(r.now())}
		if err := r.write(constants.KeyProjects, projects); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

// Project looks a project up by ID, then by case-insensitive name.
func (r *Repository) Project(ref string) (models.Project, error) {
	projects, err := r.Projects()
	if err != nil {
		return models.Project{}, err
	}
	for _, p := range projects {
		if p.ID == ref {
			return p, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("project %q: %w", ref, ErrNotFound)
}

// SaveProject inserts or replaces p. A missing ID or creation time is filled in.
func (r *Repository) SaveProject(p models.Project) (models.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return models.Project{}, fmt.Errorf("project name cannot be empty")
	}
	if p.ID == "" {
		p.ID = r.newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now()
	}
	if p.Theme == "" {
		p.Theme = models.ThemeGreen
	}

	projects, err := r.Projects()
	if err != nil {
		return models.Project{}, err
	}
	replaced := false
	for i := range projects {
		if projects[i].ID == p.ID {
			projects[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		projects = append(projects, p)
	}
	return p, r.write(constants.KeyProjects, projects)
}

// DeleteProject removes a project. The last project cannot be deleted. Logs
// of the deleted project are kept.
func (r *Repository) DeleteProject(id string) error {
	projects, err := r.Projects()
	if err != nil {
		return err
	}
	idx := -1
	for i, p := range projects {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("project %q: %w", id, ErrNotFound)
	}
	if len(projects) <= 1 {
		return ErrLastProject
	}
	projects = append(projects[:idx], projects[idx+1:]...)
	return r.write(constants.KeyProjects, projects)
}

// --- Events ---

func (r *Repository) Events() ([]models.Event, error) {
	var events []models.Event
	if _, err := r.read(constants.KeyCustomEvents, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *Repository) Event(id string) (models.Event, error) {
	events, err := r.Events()
	if err != nil {
		return models.Event{}, err
	}
	for _, e := range events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Event{}, fmt.Errorf("event %q: %w", id, ErrNotFound)
}

// SaveEvent validates and inserts or replaces e.
func (r *Repository) SaveEvent(e models.Event) (models.Event, error) {
	if err := e.Validate(); err != nil {
		return models.Event{}, err
	}
	if e.ID == "" {
		e.ID = r.newID()
	}
	events, err := r.Events()
	if err != nil {
		return models.Event{}, err
	}
	replaced := false
	for i := range events {
		if events[i].ID == e.ID {
			events[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		events = append(events, e)
	}
	return e, r.write(constants.KeyCustomEvents, events)
}

func (r *Repository) DeleteEvent(id string) error {
	events, err := r.Events()
	if err != nil {
		return err
	}
	kept := events[:0]
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(events) {
		return fmt.Errorf("event %q: %w", id, ErrNotFound)
	}
	return r.write(constants.KeyCustomEvents, kept)
}

// --- Countdowns ---

// Countdowns returns the saved countdowns. When none exist, a New Year's Day
// countdown is seeded.
func (r *Repository) Countdowns() ([]models.Countdown, error) {
	var items []models.Countdown
	if _, err := r.read(constants.KeyCountdowns, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		items = []models.Countdown{{
			ID:    r.newID(),
			Title: "New Year's Day",
			Date:  calendar.New(r.now().Year()+1, time.January, 1),
			Type:  models.CountdownHoliday,
			Color: "blue",
		}}
		if err := r.write(constants.KeyCountdowns, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *Repository) SaveCountdown(c models.Countdown) (models.Countdown, error) {
	if err := c.Validate(); err != nil {
		return models.Countdown{}, err
	}
	if c.ID == "" {
		c.ID = r.newID()
	}
	items, err := r.Countdowns()
	if err != nil {
		return models.Countdown{}, err
	}
	replaced := false
	for i := range items {
		if items[i].ID == c.ID {
			items[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, c)
	}
	return c, r.write(constants.KeyCountdowns, items)
}

func (r *Repository) DeleteCountdown(id string) error {
	items, err := r.Countdowns()
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, c := range items {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(items) {
		return fmt.Errorf("countdown %q: %w", id, ErrNotFound)
	}
	return r.write(constants.KeyCountdowns, kept)
}

// --- Goals ---

// Goals returns the study-hour goals; unset or non-positive targets fall back
// to the defaults.
func (r *Repository) Goals() (models.Goals, error) {
	var g models.Goals
	if _, err := r.readOrDefault(constants.KeyGoals, &g); err != nil {
		return models.Goals{}, err
	}
	models.ApplyDefaultGoals(&g)
	return g, nil
}

func (r *Repository) SaveGoals(g models.Goals) error {
	if g.Weekly < 0 || g.Monthly < 0 || g.Yearly < 0 {
		return fmt.Errorf("goals cannot be negative")
	}
	return r.write(constants.KeyGoals, g)
}

// --- Timer ---

func (r *Repository) TimerSettings() (models.TimerSettings, error) {
	s := models.DefaultTimerSettings()
	ok, err := r.readOrDefault(constants.KeyTimerSettings, &s)
	if err != nil {
		return models.TimerSettings{}, err
	}
	if !ok {
		s = models.DefaultTimerSettings()
	}
	return s, nil
}

func (r *Repository) SaveTimerSettings(s models.TimerSettings) error {
	if s.PomoDuration <= 0 || s.ShortBreakDuration <= 0 || s.LongBreakDuration <= 0 || s.PomosPerLongBreak <= 0 {
		return fmt.Errorf("timer durations and pomodoros per long break must be positive")
	}
	return r.write(constants.KeyTimerSettings, s)
}

// Sessions returns completed timer sessions, newest first.
func (r *Repository) Sessions() ([]models.Session, error) {
	var sessions []models.Session
	if _, err := r.read(constants.KeySessions, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// AddSession records s ahead of older sessions.
func (r *Repository) AddSession(s models.Session) (models.Session, error) {
	if s.ID == "" {
		s.ID = r.newID()
	}
	sessions, err := r.Sessions()
	if err != nil {
		return models.Session{}, err
	}
	sessions = append([]models.Session{s}, sessions...)
	return s, r.write(constants.KeySessions, sessions)
}

func (r *Repository) DeleteSession(id string) error {
	sessions, err := r.Sessions()
	if err != nil {
		return err
	}
	kept := sessions[:0]
	for _, s := range sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(sessions) {
		return fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	return r.write(constants.KeySessions, kept)
}

// --- Settings ---

func (r *Repository) Settings() (models.Settings, error) {
	var data map[string]string
	if _, err := r.readOrDefault(constants.KeySettings, &data); err != nil {
		return models.Settings{}, err
	}
	settings, err := models.MapToSettings(data)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (r *Repository) SaveSettings(s models.Settings) error {
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
		}
	}
	return r.write(constants.KeySettings, models.SettingsToMap(s))
}

// Location resolves the configured timezone, falling back to the local zone.
func (r *Repository) Location() *time.Location {
	s, err := r.Settings()
	if err != nil {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		logger.Warn("Unknown timezone in settings, using local time", "timezone", s.Timezone)
		return time.Local
	}
	return loc
}

// ClearAll deletes every key owned by the application and returns how many
// were removed.
func (r *Repository) ClearAll() (int, error) {
	keys, err := r.kv.List(constants.KeyPrefix)
	if err != nil {
		return 0, err
	}
	for _, k := range keys {
		if err := r.kv.Delete(k); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}
