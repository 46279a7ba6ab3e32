package scheduler

import (
	"context"
	"time"

	"github.com/salespoint/internal/models"
)

// Job produces the report for one period. The target is the time the run
// was originally scheduled for, which may be in the past if the process
// was offline when the schedule came due.
type Job func(ctx context.Context, target time.Time) error

// Registry resolves a report type to its job. It is built at startup and
// handed to the loop; rows with a type no job claims are skipped.
type Registry struct {
	jobs map[models.ReportType]Job
}

func NewRegistry() *Registry {
	return &Registry{jobs: make(map[models.ReportType]Job)}
}

func (r *Registry) Register(reportType models.ReportType, job Job) {
	r.jobs[reportType] = job
}

func (r *Registry) Resolve(reportType models.ReportType) (Job, bool) {
	job, ok := r.jobs[reportType]
	return job, ok
}
