package main

import (
	"log"

	"github.com/salespoint/internal/api"
	"github.com/salespoint/internal/auth"
	"github.com/salespoint/internal/config"
	"github.com/salespoint/internal/database"
	"github.com/salespoint/internal/notify"
	"github.com/salespoint/internal/report"
	"github.com/salespoint/internal/sales"
	"github.com/salespoint/internal/scheduler"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	auth.Init(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize database
	if err := database.Initialize(cfg.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()

	// Notification and audit fan-out
	notifyConfig := &notify.Config{
		SlackToken:     cfg.Notify.Slack.Token,
		SlackChannel:   cfg.Notify.Slack.Channel,
		SMTPHost:       cfg.Notify.Email.SMTPHost,
		SMTPPort:       cfg.Notify.Email.SMTPPort,
		EmailFrom:      cfg.Notify.Email.From,
		EmailPassword:  cfg.Notify.Email.Password,
		EmailReceivers: cfg.Notify.Email.ToReceivers,
	}
	notifier := notify.NewManager(notifyConfig, db)

	// Report generation
	generator := report.NewGenerator(db)
	reportStore := report.NewStore(db)

	// Sales
	salesService := sales.NewService(db, notifier)

	// Automated report scheduler
	if cfg.Scheduler.Enabled {
		outcomes, err := scheduler.NewFileOutcomeLogger(cfg.Scheduler.LogPath)
		if err != nil {
			log.Fatalf("Failed to open scheduler log: %v", err)
		}
		defer outcomes.Close()

		registry := scheduler.NewRegistry()
		jobs := scheduler.NewJobs(generator, reportStore, notifier)
		jobs.RegisterAll(registry)

		sched := scheduler.New(
			scheduler.Config{JobTimeout: cfg.Scheduler.JobTimeout},
			scheduler.NewScheduleStore(db),
			registry,
			notifier,
			outcomes,
		)
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	} else {
		log.Printf("Scheduler is disabled (scheduler.enabled is not true)")
	}

	// Initialize and start API server
	server := api.NewServer(salesService, reportStore, generator, notifier)
	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
