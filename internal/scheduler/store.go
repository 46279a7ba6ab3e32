package scheduler

import (
	"fmt"
	"time"

	"github.com/salespoint/internal/models"
	"gorm.io/gorm"
)

// ScheduleStore is the persistence the loop polls and advances.
type ScheduleStore interface {
	// FindDue returns active schedules whose next_run is at or before now,
	// in store order.
	FindDue(now time.Time) ([]models.ReportSchedule, error)
	// UpdateAfterRun advances a schedule after a successful run.
	UpdateAfterRun(scheduleID uint, nextRun, ranAt time.Time) error
}

type gormScheduleStore struct {
	db *gorm.DB
}

func NewScheduleStore(db *gorm.DB) ScheduleStore {
	return &gormScheduleStore{db: db}
}

func (s *gormScheduleStore) FindDue(now time.Time) ([]models.ReportSchedule, error) {
	var due []models.ReportSchedule
	err := s.db.
		Where("is_active = ? AND next_run <= ?", true, now).
		Order("next_run").
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query due schedules: %v", err)
	}
	return due, nil
}

func (s *gormScheduleStore) UpdateAfterRun(scheduleID uint, nextRun, ranAt time.Time) error {
	err := s.db.Model(&models.ReportSchedule{}).
		Where("id = ?", scheduleID).
		Updates(map[string]interface{}{
			"next_run":       nextRun,
			"last_generated": ranAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update schedule %d: %v", scheduleID, err)
	}
	return nil
}
