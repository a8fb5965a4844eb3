// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/focusflow/internal/logger"
)

// Job is a named task run on a cron spec such as "@every 30s" or "0 0 * * *".
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler wraps a cron.Cron whose jobs share one context.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	ids    map[string]cron.EntryID
}

// New creates a scheduler evaluating specs in loc and registers jobs. It fails
// on the first invalid spec.
func New(loc *time.Location, jobs ...Job) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger{}),
		cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{})),
	)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{cron: c, ctx: ctx, cancel: cancel, ids: make(map[string]cron.EntryID)}
	for _, j := range jobs {
		if err := s.Add(j); err != nil {
			cancel()
			return nil, err
		}
	}
	return s, nil
}

// Add registers a job. Job names must be unique.
func (s *Scheduler) Add(j Job) error {
	if _, dup := s.ids[j.Name]; dup {
		return fmt.Errorf("job %q already registered", j.Name)
	}
	id, err := s.cron.AddFunc(j.Spec, func() {
		logger.Debug("Running scheduled job", "job", j.Name)
		if err := j.Run(s.ctx); err != nil {
			logger.Error("Scheduled job failed", "job", j.Name, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %q: %w", j.Spec, j.Name, err)
	}
	s.ids[j.Name] = id
	return nil
}

// Next returns the next run time of the named job, or the zero time if the
// scheduler is not running or the job is unknown.
func (s *Scheduler) Next(name string) time.Time {
	id, ok := s.ids[name]
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started", "jobs", s.Jobs())
}

// Stop cancels the job context and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Scheduler stopped")
}

// cronLogger routes cron's own logging through the application logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
