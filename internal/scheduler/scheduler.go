package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/salespoint/internal/models"
)

const (
	defaultJobTimeout = 2 * time.Minute
	defaultPollEvery  = time.Minute
	maxBackoffPolls   = 5
)

// Effects receives fire-and-forget side effects of job runs. Implementations
// must absorb their own failures; the loop never sees them.
type Effects interface {
	ReportGenerated(reportType models.ReportType, periodStart string)
	JobFailed(reportType models.ReportType, err error)
}

// NopEffects is used when no notification backend is wired.
type NopEffects struct{}

func (NopEffects) ReportGenerated(models.ReportType, string) {}
func (NopEffects) JobFailed(models.ReportType, error)        {}

type Config struct {
	// JobTimeout bounds a single job execution.
	JobTimeout time.Duration
	// PollInterval is the cadence of the due-schedule poll; it also scales
	// the in-memory retry backoff.
	PollInterval time.Duration
}

// Scheduler polls the schedule store once per minute and runs due report
// jobs sequentially. next_run only advances after a successful run, so a
// failed schedule stays due and is retried on a later poll.
type Scheduler struct {
	store    ScheduleStore
	registry *Registry
	effects  Effects
	outcomes *OutcomeLogger

	jobTimeout   time.Duration
	pollInterval time.Duration

	cron *cron.Cron

	// pollMu guarantees polls never overlap: a slow poll makes the next
	// timer fire a no-op instead of double-firing the same due row.
	pollMu sync.Mutex

	// failures tracks consecutive failures per schedule, in memory only.
	// The persisted row stays due; this just spaces out retries.
	failMu   sync.Mutex
	failures map[uint]failureState

	now func() time.Time
}

type failureState struct {
	count     int
	notBefore time.Time
}

func New(cfg Config, store ScheduleStore, registry *Registry, effects Effects, outcomes *OutcomeLogger) *Scheduler {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = defaultJobTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollEvery
	}
	if effects == nil {
		effects = NopEffects{}
	}
	return &Scheduler{
		store:        store,
		registry:     registry,
		effects:      effects,
		outcomes:     outcomes,
		jobTimeout:   cfg.JobTimeout,
		pollInterval: cfg.PollInterval,
		failures:     make(map[uint]failureState),
		now:          time.Now,
	}
}

// Start begins the once-per-minute poll.
func (s *Scheduler) Start() error {
	c := cron.New()
	if _, err := c.AddFunc("* * * * *", s.Poll); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	log.Printf("Scheduler started, polling every minute")
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Poll runs one poll cycle: query due schedules and execute each in store
// order. A failing row never aborts the rest of the poll; a failing
// due-query aborts only this poll.
func (s *Scheduler) Poll() {
	if !s.pollMu.TryLock() {
		return
	}
	defer s.pollMu.Unlock()

	now := s.now()
	due, err := s.store.FindDue(now)
	if err != nil {
		log.Printf("Scheduler polling error: %v", err)
		return
	}
	if len(due) > 0 {
		log.Printf("Found %d report(s) due for generation", len(due))
	}

	for i := range due {
		s.runSchedule(&due[i], now)
	}
}

func (s *Scheduler) runSchedule(entry *models.ReportSchedule, now time.Time) {
	job, ok := s.registry.Resolve(entry.ReportType)
	if !ok {
		// Unclaimed report type: leave the row due and move on.
		return
	}
	if s.inBackoff(entry.ID, now) {
		return
	}

	name := string(entry.ReportType)
	s.outcomes.Record(name, OutcomeStart)

	// Run for the period the row was scheduled for, not wall-clock now, so
	// a run missed during downtime still covers the right dates.
	target := entry.NextRun

	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	err := job(ctx, target)
	cancel()
	if err != nil {
		log.Printf("Failed to run %s report: %v", name, err)
		s.outcomes.Record(name, OutcomeError)
		s.effects.JobFailed(entry.ReportType, err)
		s.noteFailure(entry.ID, now)
		return
	}

	// Reschedule from wall-clock now so a backfilled run does not compound
	// drift after an outage.
	ranAt := s.now()
	next := NextRun(entry.ReportType, ranAt)
	if err := s.store.UpdateAfterRun(entry.ID, next, ranAt); err != nil {
		log.Printf("Failed to reschedule %s report: %v", name, err)
		s.outcomes.Record(name, OutcomeError)
		s.effects.JobFailed(entry.ReportType, err)
		s.noteFailure(entry.ID, now)
		return
	}

	s.clearFailures(entry.ID)
	s.outcomes.Record(name, OutcomeSuccess)
	log.Printf("Rescheduled %s report to %s", name, next.Format(time.RFC3339))
}

// inBackoff reports whether a schedule is still inside its retry delay.
func (s *Scheduler) inBackoff(scheduleID uint, now time.Time) bool {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	state, ok := s.failures[scheduleID]
	return ok && now.Before(state.notBefore)
}

func (s *Scheduler) noteFailure(scheduleID uint, now time.Time) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	state := s.failures[scheduleID]
	state.count++
	polls := state.count
	if polls > maxBackoffPolls {
		polls = maxBackoffPolls
	}
	state.notBefore = now.Add(time.Duration(polls) * s.pollInterval)
	s.failures[scheduleID] = state
}

func (s *Scheduler) clearFailures(scheduleID uint) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	delete(s.failures, scheduleID)
}
