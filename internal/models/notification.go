package models

import (
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationLowStock    NotificationType = "LOW_STOCK"
	NotificationReportReady NotificationType = "REPORT_READY"
	NotificationJobFailed   NotificationType = "JOB_FAILED"
)

type Notification struct {
	gorm.Model
	Type    NotificationType `gorm:"index;not null" json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	IsRead  bool             `gorm:"default:false" json:"is_read"`
}
