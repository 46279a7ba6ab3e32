package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/salespoint/internal/models"
	"gorm.io/gorm"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// SaveResult reports which side of the upsert a save took.
type SaveResult struct {
	ReportID uint   `json:"report_id"`
	Action   string `json:"action"`
}

// Store persists generated reports, keyed on (report_type, period_start).
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save upserts a report for its period. Re-running a job for an
// already-reported period overwrites the existing record rather than
// creating a duplicate.
func (s *Store) Save(stats *Stats, generatedBy uint) (*SaveResult, error) {
	payload, err := json.Marshal(stats.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report data: %v", err)
	}

	existing, err := s.FindByTypeAndDate(stats.ReportType, stats.PeriodStart)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		updates := map[string]interface{}{
			"generated_by":       generatedBy,
			"total_sales":        stats.TotalSales,
			"total_transactions": stats.TotalTransactions,
			"data":               string(payload),
			"created_at":         time.Now(),
		}
		if err := s.db.Model(existing).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update report: %v", err)
		}
		return &SaveResult{ReportID: existing.ID, Action: ActionUpdated}, nil
	}

	record := models.Report{
		ReportType:        stats.ReportType,
		PeriodStart:       stats.PeriodStart,
		PeriodEnd:         stats.PeriodEnd,
		GeneratedBy:       generatedBy,
		TotalSales:        stats.TotalSales,
		TotalTransactions: stats.TotalTransactions,
		Format:            "JSON",
		Data:              string(payload),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %v", err)
	}
	return &SaveResult{ReportID: record.ID, Action: ActionCreated}, nil
}

// FindByTypeAndDate returns the report for a period key, or nil when none
// exists.
func (s *Store) FindByTypeAndDate(reportType models.ReportType, periodStart string) (*models.Report, error) {
	var record models.Report
	err := s.db.Where("report_type = ? AND period_start = ?", reportType, periodStart).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up report: %v", err)
	}
	return &record, nil
}

// Latest returns the most recent report of a type by period start.
func (s *Store) Latest(reportType models.ReportType) (*models.Report, error) {
	var record models.Report
	err := s.db.Where("report_type = ?", reportType).
		Order("period_start desc").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up latest report: %v", err)
	}
	return &record, nil
}

// History returns up to limit reports of a type, newest period first.
func (s *Store) History(reportType models.ReportType, limit int) ([]models.Report, error) {
	query := s.db.Order("period_start desc")
	if reportType != "" {
		query = query.Where("report_type = ?", reportType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var records []models.Report
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %v", err)
	}
	return records, nil
}
