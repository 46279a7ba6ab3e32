package notify

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/salespoint/internal/models"
	"github.com/slack-go/slack"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

type Config struct {
	SlackToken     string
	SlackChannel   string
	SMTPHost       string
	SMTPPort       int
	EmailFrom      string
	EmailPassword  string
	EmailReceivers []string
}

// Manager persists notifications and fans them out to Slack and email.
// All delivery is best-effort: a failed channel is logged and dropped, it
// never propagates into the caller's path.
type Manager struct {
	slackClient *slack.Client
	emailDialer *gomail.Dialer
	config      *Config
	db          *gorm.DB
}

func NewManager(config *Config, db *gorm.DB) *Manager {
	m := &Manager{config: config, db: db}
	if config.SlackToken != "" {
		m.slackClient = slack.New(config.SlackToken)
	}
	if config.SMTPHost != "" {
		m.emailDialer = gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.EmailFrom, config.EmailPassword)
	}
	return m
}

// ReportGenerated announces a finished report run.
func (m *Manager) ReportGenerated(reportType models.ReportType, periodStart string) {
	title := fmt.Sprintf("%s report ready", reportType)
	message := fmt.Sprintf("The %s sales report for %s has been generated.", reportType, periodStart)
	m.dispatch(models.NotificationReportReady, title, message, false)
}

// JobFailed announces a failed report run. These also go out by email so a
// broken schedule is noticed before the log is read.
func (m *Manager) JobFailed(reportType models.ReportType, err error) {
	title := fmt.Sprintf("%s report failed", reportType)
	message := fmt.Sprintf("The %s report job failed: %v. The schedule remains due and will be retried.", reportType, err)
	m.dispatch(models.NotificationJobFailed, title, message, true)
}

// LowStock announces a product at or below its reorder level.
func (m *Manager) LowStock(product *models.Product) {
	title := fmt.Sprintf("Low stock: %s", product.Name)
	message := fmt.Sprintf("%s is down to %d units (reorder level %d).",
		product.Name, product.Quantity, product.ReorderLevel)
	m.dispatch(models.NotificationLowStock, title, message, false)
}

// Audit appends an audit-log row. Best-effort, like delivery.
func (m *Manager) Audit(userID uint, action, entity string, entityID uint, details string) {
	entry := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	}
	if err := m.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to write audit log: %v", err)
	}
}

func (m *Manager) dispatch(kind models.NotificationType, title, message string, email bool) {
	record := models.Notification{
		Type:    kind,
		Title:   title,
		Message: message,
	}
	if err := m.db.Create(&record).Error; err != nil {
		log.Printf("Failed to save notification: %v", err)
	}

	if err := m.sendSlack(title, message); err != nil {
		log.Printf("Failed to send slack notification: %v", err)
	}
	if email {
		if err := m.sendEmail(title, message); err != nil {
			log.Printf("Failed to send email notification: %v", err)
		}
	}
}

func (m *Manager) sendSlack(title, message string) error {
	if m.slackClient == nil {
		return nil
	}
	attachment := slack.Attachment{
		Title:  title,
		Text:   message,
		Footer: "SalesPoint",
		Ts:     jsonUnixNow(),
	}
	_, _, err := m.slackClient.PostMessage(
		m.config.SlackChannel,
		slack.MsgOptionAttachments(attachment),
	)
	return err
}

func (m *Manager) sendEmail(title, message string) error {
	if m.emailDialer == nil || len(m.config.EmailReceivers) == 0 {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.EmailFrom)
	msg.SetHeader("To", m.config.EmailReceivers...)
	msg.SetHeader("Subject", "SalesPoint: "+title)
	msg.SetBody("text/plain", fmt.Sprintf("%s\n\nTime: %s", message, time.Now().Format(time.RFC3339)))
	return m.emailDialer.DialAndSend(msg)
}

func jsonUnixNow() json.Number {
	return json.Number(strconv.FormatInt(time.Now().Unix(), 10))
}
