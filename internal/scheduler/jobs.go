package scheduler

import (
	"context"
	"time"

	"github.com/salespoint/internal/models"
	"github.com/salespoint/internal/report"
)

// systemActorID tags reports produced by the scheduler rather than a user.
const systemActorID = 1

// Jobs holds the report jobs the scheduler dispatches to.
type Jobs struct {
	generator *report.Generator
	store     *report.Store
	effects   Effects
}

func NewJobs(generator *report.Generator, store *report.Store, effects Effects) *Jobs {
	if effects == nil {
		effects = NopEffects{}
	}
	return &Jobs{generator: generator, store: store, effects: effects}
}

// RegisterAll wires the three report jobs into a registry.
func (j *Jobs) RegisterAll(r *Registry) {
	r.Register(models.ReportTypeDaily, j.Daily)
	r.Register(models.ReportTypeWeekly, j.Weekly)
	r.Register(models.ReportTypeMonthly, j.Monthly)
}

// Daily generates the sales report for the target's calendar date.
func (j *Jobs) Daily(ctx context.Context, target time.Time) error {
	stats, err := j.generator.DailyStats(ctx, target)
	if err != nil {
		return err
	}
	return j.save(stats)
}

// Weekly generates the report for the 7-day window ending on the target's
// date.
func (j *Jobs) Weekly(ctx context.Context, target time.Time) error {
	stats, err := j.generator.WeeklyStats(ctx, target)
	if err != nil {
		return err
	}
	return j.save(stats)
}

// Monthly generates the report for the calendar month preceding the target.
// The monthly schedule fires on the first of a month, right after the
// reported month closes.
func (j *Jobs) Monthly(ctx context.Context, target time.Time) error {
	month := time.Date(target.Year(), target.Month(), 1, 0, 0, 0, 0, target.Location()).AddDate(0, -1, 0)
	stats, err := j.generator.MonthlyStats(ctx, month)
	if err != nil {
		return err
	}
	return j.save(stats)
}

func (j *Jobs) save(stats *report.Stats) error {
	if _, err := j.store.Save(stats, systemActorID); err != nil {
		return err
	}
	j.effects.ReportGenerated(stats.ReportType, stats.PeriodStart)
	return nil
}
