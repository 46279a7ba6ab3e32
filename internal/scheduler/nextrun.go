package scheduler

import (
	"time"

	"github.com/salespoint/internal/models"
)

// NextRun computes when a schedule of the given type should fire again,
// seeded from the reference time.
//
//	Daily:   reference + 1 day, at 23:59:00
//	Weekly:  reference + 7 days, at 23:59:00
//	Monthly: first day of the month after the reference, at 00:00:00
//
// An unrecognized type returns the reference unchanged.
func NextRun(reportType models.ReportType, ref time.Time) time.Time {
	switch reportType {
	case models.ReportTypeDaily:
		next := ref.AddDate(0, 0, 1)
		return time.Date(next.Year(), next.Month(), next.Day(), 23, 59, 0, 0, next.Location())
	case models.ReportTypeWeekly:
		next := ref.AddDate(0, 0, 7)
		return time.Date(next.Year(), next.Month(), next.Day(), 23, 59, 0, 0, next.Location())
	case models.ReportTypeMonthly:
		return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, 1, 0)
	default:
		return ref
	}
}
