package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/salespoint/internal/models"
	"github.com/salespoint/internal/scheduler"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Initialize initializes the database connection
func Initialize(dbPath string) error {
	var initErr error
	once.Do(func() {
		// Ensure the directory exists
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create database directory: %v", err)
			return
		}

		var err error
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
		if err != nil {
			initErr = fmt.Errorf("failed to connect to database: %v", err)
			return
		}

		// Auto migrate the schema
		if err := db.AutoMigrate(
			&models.User{},
			&models.Category{},
			&models.Product{},
			&models.StockLog{},
			&models.Transaction{},
			&models.TransactionItem{},
			&models.Report{},
			&models.ReportSchedule{},
			&models.Notification{},
			&models.AuditLog{},
			&models.Setting{},
		); err != nil {
			initErr = fmt.Errorf("failed to migrate database: %v", err)
			return
		}

		if err := seedSchedules(db); err != nil {
			initErr = fmt.Errorf("failed to seed report schedules: %v", err)
			return
		}

		log.Printf("Database initialized at %s", dbPath)
	})

	return initErr
}

// seedSchedules creates the three recurring report schedules on first run.
func seedSchedules(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ReportSchedule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	for _, t := range []models.ReportType{
		models.ReportTypeDaily,
		models.ReportTypeWeekly,
		models.ReportTypeMonthly,
	} {
		entry := models.ReportSchedule{
			ReportType: t,
			IsActive:   true,
			NextRun:    scheduler.NextRun(t, now),
		}
		if err := db.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	if db == nil {
		panic("Database not initialized. Call Initialize() first")
	}
	return db
}

// Close closes the database connection
func Close() error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying *sql.DB: %v", err)
	}

	return sqlDB.Close()
}
