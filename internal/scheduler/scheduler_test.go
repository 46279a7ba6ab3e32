package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/salespoint/internal/models"
)

type fakeStore struct {
	schedules []models.ReportSchedule
	findErr   error
	updates   []updateCall
	updateErr error
}

type updateCall struct {
	scheduleID uint
	nextRun    time.Time
	ranAt      time.Time
}

func (f *fakeStore) FindDue(now time.Time) ([]models.ReportSchedule, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var due []models.ReportSchedule
	for _, entry := range f.schedules {
		if entry.IsActive && !entry.NextRun.After(now) {
			due = append(due, entry)
		}
	}
	return due, nil
}

func (f *fakeStore) UpdateAfterRun(scheduleID uint, nextRun, ranAt time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, updateCall{scheduleID, nextRun, ranAt})
	for i := range f.schedules {
		if f.schedules[i].ID == scheduleID {
			f.schedules[i].NextRun = nextRun
			f.schedules[i].LastGenerated = &ranAt
		}
	}
	return nil
}

type fakeEffects struct {
	generated []string
	failed    []models.ReportType
}

func (f *fakeEffects) ReportGenerated(reportType models.ReportType, periodStart string) {
	f.generated = append(f.generated, string(reportType)+"/"+periodStart)
}

func (f *fakeEffects) JobFailed(reportType models.ReportType, err error) {
	f.failed = append(f.failed, reportType)
}

func newTestScheduler(store ScheduleStore, registry *Registry, effects Effects, now time.Time) *Scheduler {
	s := New(Config{JobTimeout: time.Second, PollInterval: time.Minute}, store, registry, effects, NewOutcomeLogger(io.Discard))
	s.now = func() time.Time { return now }
	return s
}

func schedule(id uint, reportType models.ReportType, nextRun time.Time) models.ReportSchedule {
	entry := models.ReportSchedule{ReportType: reportType, IsActive: true, NextRun: nextRun}
	entry.ID = id
	return entry
}

func TestPollNothingDue(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{schedules: []models.ReportSchedule{
		schedule(1, models.ReportTypeDaily, now.Add(time.Hour)),
	}}

	invoked := 0
	registry := NewRegistry()
	registry.Register(models.ReportTypeDaily, func(ctx context.Context, target time.Time) error {
		invoked++
		return nil
	})

	s := newTestScheduler(store, registry, &fakeEffects{}, now)
	s.Poll()

	if invoked != 0 {
		t.Errorf("expected no job invocations, got %d", invoked)
	}
	if len(store.updates) != 0 {
		t.Errorf("expected no store writes, got %d", len(store.updates))
	}
}

func TestPollRunsDueJobWithTargetDate(t *testing.T) {
	now := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	due := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	store := &fakeStore{schedules: []models.ReportSchedule{
		schedule(1, models.ReportTypeDaily, due),
	}}

	var gotTarget time.Time
	registry := NewRegistry()
	registry.Register(models.ReportTypeDaily, func(ctx context.Context, target time.Time) error {
		gotTarget = target
		return nil
	})

	s := newTestScheduler(store, registry, &fakeEffects{}, now)
	s.Poll()

	// The job runs for the period it was scheduled for, not for "now".
	if !gotTarget.Equal(due) {
		t.Errorf("job target = %v, want the recorded next_run %v", gotTarget, due)
	}

	if len(store.updates) != 1 {
		t.Fatalf("expected one store update, got %d", len(store.updates))
	}
	// The reschedule is seeded from wall-clock now, not the missed target.
	wantNext := NextRun(models.ReportTypeDaily, now)
	if !store.updates[0].nextRun.Equal(wantNext) {
		t.Errorf("next_run = %v, want %v", store.updates[0].nextRun, wantNext)
	}
	if !store.updates[0].ranAt.Equal(now) {
		t.Errorf("last_generated = %v, want %v", store.updates[0].ranAt, now)
	}
}

func TestPollIsolatesRowFailures(t *testing.T) {
	now := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	dailyDue := now.Add(-2 * time.Minute)
	weeklyDue := now.Add(-time.Minute)
	store := &fakeStore{schedules: []models.ReportSchedule{
		schedule(1, models.ReportTypeDaily, dailyDue),
		schedule(2, models.ReportTypeWeekly, weeklyDue),
	}}

	registry := NewRegistry()
	registry.Register(models.ReportTypeDaily, func(ctx context.Context, target time.Time) error {
		return errors.New("aggregation query failed")
	})
	weeklyRan := false
	registry.Register(models.ReportTypeWeekly, func(ctx context.Context, target time.Time) error {
		weeklyRan = true
		return nil
	})

	effects := &fakeEffects{}
	s := newTestScheduler(store, registry, effects, now)
	s.Poll()

	if !weeklyRan {
		t.Error("weekly job should still run after daily job failed")
	}
	if len(store.updates) != 1 || store.updates[0].scheduleID != 2 {
		t.Fatalf("expected exactly the weekly schedule to advance, got %+v", store.updates)
	}
	// The failing schedule stays due on its original next_run.
	if !store.schedules[0].NextRun.Equal(dailyDue) {
		t.Errorf("failed schedule next_run moved to %v, want unchanged %v", store.schedules[0].NextRun, dailyDue)
	}
	if len(effects.failed) != 1 || effects.failed[0] != models.ReportTypeDaily {
		t.Errorf("expected one JobFailed effect for Daily, got %v", effects.failed)
	}
}

func TestPollSkipsUnknownReportType(t *testing.T) {
	now := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	store := &fakeStore{schedules: []models.ReportSchedule{
		schedule(1, models.ReportType("Quarterly"), now.Add(-time.Minute)),
		schedule(2, models.ReportTypeDaily, now.Add(-time.Minute)),
	}}

	registry := NewRegistry()
	dailyRan := false
	registry.Register(models.ReportTypeDaily, func(ctx context.Context, target time.Time) error {
		dailyRan = true
		return nil
	})

	effects := &fakeEffects{}
	s := newTestScheduler(store, registry, effects, now)
	s.Poll()

	if !dailyRan {
		t.Error("known job should run even when an unknown row precedes it")
	}
	if len(store.updates) != 1 || store.updates[0].scheduleID != 2 {
		t.Fatalf("only the daily schedule should advance, got %+v", store.updates)
	}
	if len(effects.failed) != 0 {
		t.Errorf("unknown type must not be treated as a failure, got %v", effects.failed)
	}
}

func TestPollAbortsOnDueQueryFailure(t *testing.T) {
	now := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	store := &fakeStore{findErr: errors.New("store unavailable")}

	registry := NewRegistry()
	invoked := 0
	registry.Register(models.ReportTypeDaily, func(ctx context.Context, target time.Time) error {
		invoked++
		return nil
	})

	s := newTestScheduler(store, registry, &fakeEffects{}, now)
	s.Poll() // must not panic

	if invoked != 0 {
		t.Errorf("no jobs should run when the due query fails, got %d invocations", invoked)
	}
}

func TestFailureBackoffSpacesRetries(t *testing.T) {
	start := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	store := &fakeStore{schedules: []models.ReportSchedule{
		schedule(1, models.ReportTypeDaily, start.Add(-time.Minute)),
	}}

	invoked := 0
	registry := NewRegistry()
	registry.Register(models.ReportTypeDaily, func(ctx context.Context, target time.Time) error {
		invoked++
		return errors.New("broken")
	})

	now := start
	s := newTestScheduler(store, registry, &fakeEffects{}, now)
	s.now = func() time.Time { return now }

	s.Poll()
	if invoked != 1 {
		t.Fatalf("first poll should invoke the job, got %d", invoked)
	}

	// Next minute: still inside the one-interval backoff window.
	now = start.Add(30 * time.Second)
	s.Poll()
	if invoked != 1 {
		t.Fatalf("job should be in backoff, got %d invocations", invoked)
	}

	// After the window the row is retried.
	now = start.Add(2 * time.Minute)
	s.Poll()
	if invoked != 2 {
		t.Fatalf("job should be retried after backoff, got %d invocations", invoked)
	}
}

func TestSuccessClearsBackoff(t *testing.T) {
	start := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	store := &fakeStore{schedules: []models.ReportSchedule{
		schedule(1, models.ReportTypeDaily, start.Add(-time.Minute)),
	}}

	fail := true
	invoked := 0
	registry := NewRegistry()
	registry.Register(models.ReportTypeDaily, func(ctx context.Context, target time.Time) error {
		invoked++
		if fail {
			return errors.New("transient")
		}
		return nil
	})

	now := start
	s := newTestScheduler(store, registry, &fakeEffects{}, now)
	s.now = func() time.Time { return now }

	s.Poll() // fails
	fail = false
	now = start.Add(2 * time.Minute)
	s.Poll() // succeeds

	if invoked != 2 {
		t.Fatalf("expected two invocations, got %d", invoked)
	}
	s.failMu.Lock()
	_, tracked := s.failures[1]
	s.failMu.Unlock()
	if tracked {
		t.Error("successful run should clear the failure state")
	}
}

func TestJobTimeout(t *testing.T) {
	now := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	store := &fakeStore{schedules: []models.ReportSchedule{
		schedule(1, models.ReportTypeDaily, now.Add(-time.Minute)),
	}}

	registry := NewRegistry()
	registry.Register(models.ReportTypeDaily, func(ctx context.Context, target time.Time) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return nil
		}
	})

	effects := &fakeEffects{}
	s := New(Config{JobTimeout: 10 * time.Millisecond, PollInterval: time.Minute}, store, registry, effects, NewOutcomeLogger(io.Discard))
	s.now = func() time.Time { return now }

	s.Poll()

	if len(store.updates) != 0 {
		t.Errorf("timed-out job must not advance the schedule, got %+v", store.updates)
	}
	if len(effects.failed) != 1 {
		t.Errorf("timed-out job should report failure, got %v", effects.failed)
	}
}

func TestUpdateFailureLeavesRowDue(t *testing.T) {
	now := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	due := now.Add(-time.Minute)
	store := &fakeStore{
		schedules: []models.ReportSchedule{schedule(1, models.ReportTypeDaily, due)},
		updateErr: errors.New("write failed"),
	}

	registry := NewRegistry()
	registry.Register(models.ReportTypeDaily, func(ctx context.Context, target time.Time) error {
		return nil
	})

	effects := &fakeEffects{}
	s := newTestScheduler(store, registry, effects, now)
	s.Poll()

	if !store.schedules[0].NextRun.Equal(due) {
		t.Errorf("schedule advanced despite persist failure: %v", store.schedules[0].NextRun)
	}
	if len(effects.failed) != 1 {
		t.Errorf("persist failure should surface as a failed job, got %v", effects.failed)
	}
}
