package models

import (
	"gorm.io/gorm"
)

type AuditLog struct {
	gorm.Model
	UserID   uint   `gorm:"index" json:"user_id"`
	Action   string `gorm:"not null" json:"action"`
	Entity   string `json:"entity"`
	EntityID uint   `json:"entity_id"`
	Details  string `json:"details,omitempty"`
}

type Setting struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;not null" json:"key"`
	Value string `json:"value"`
}
