package models

import (
	"time"

	"gorm.io/gorm"
)

type ReportType string

const (
	ReportTypeDaily   ReportType = "Daily"
	ReportTypeWeekly  ReportType = "Weekly"
	ReportTypeMonthly ReportType = "Monthly"
)

// Report is a generated sales report. At most one row exists per
// (report_type, period_start) pair; saving is an upsert on that key.
type Report struct {
	gorm.Model
	ReportType        ReportType `gorm:"uniqueIndex:idx_report_period;not null" json:"report_type"`
	PeriodStart       string     `gorm:"uniqueIndex:idx_report_period;not null" json:"period_start"` // YYYY-MM-DD
	PeriodEnd         string     `json:"period_end"`
	GeneratedBy       uint       `json:"generated_by"`
	TotalSales        float64    `json:"total_sales"`
	TotalTransactions int        `json:"total_transactions"`
	Format            string     `gorm:"default:JSON" json:"format"`
	Data              string     `gorm:"type:json" json:"data"`
}

// ReportSchedule is one recurring report's cadence row. NextRun only ever
// moves forward, and only after a successful run.
type ReportSchedule struct {
	gorm.Model
	ReportType    ReportType `gorm:"uniqueIndex;not null" json:"report_type"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	NextRun       time.Time  `gorm:"index" json:"next_run"`
	LastGenerated *time.Time `json:"last_generated"`
}
