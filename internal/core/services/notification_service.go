package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"college-cms/internal/adapters/persistence/models"
	"college-cms/internal/core/domain"

	"github.com/google/uuid"
)

// DefaultLogCapacity is the size of the bounded notification log. Insertion
// beyond capacity evicts the oldest entry regardless of its read status, so
// an unread notification can be dropped under high volume.
const DefaultLogCapacity = 50

// ErrStoreClosed is returned when publishing to a closed notification store.
var ErrStoreClosed = errors.New("notification store is closed")

// DeliveryChannel is a fire-and-forget sink (browser push, email relay).
// Delivery failures are logged and discarded, never surfaced to any caller.
type DeliveryChannel interface {
	Name() string
	Deliver(n domain.Notification) error
}

// NotificationService owns the process-wide notification log: a bounded,
// newest-first buffer keyed by recipient, fed by workflow transition events.
type NotificationService struct {
	mu       sync.Mutex
	capacity int
	entries  []*domain.Notification // newest first
	channels []DeliveryChannel
	closed   bool
}

// NewNotificationService creates a notification service with the given log
// capacity (DefaultLogCapacity when non-positive) and delivery channels.
func NewNotificationService(capacity int, channels ...DeliveryChannel) *NotificationService {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &NotificationService{
		capacity: capacity,
		channels: channels,
	}
}

// Close tears the store down; subsequent publishes fail with ErrStoreClosed.
func (s *NotificationService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.entries = nil
}

// PublishTransition formats and logs a notification for a persisted workflow
// transition. Implements TransitionPublisher.
func (s *NotificationService) PublishTransition(event TransitionEvent) error {
	record := event.Record
	n := domain.Notification{
		Type:        event.Type,
		RecipientID: record.EmployeeNo,
		Data:        recordPayload(record),
		Timestamp:   event.OccurredAt,
	}

	switch event.Type {
	case domain.NotifyPayrollApproved:
		n.Title = "Salary Approved"
		n.Message = fmt.Sprintf("Your salary for %s has been approved.", record.PayMonth)
	case domain.NotifyPayrollPaid:
		n.Title = "Salary Credited"
		n.Message = fmt.Sprintf("Your salary of %s for %s has been paid.", record.NetSalary.StringFixed(2), record.PayMonth)
	default:
		n.Title = string(event.Type)
		n.Message = fmt.Sprintf("Payroll %d changed to %s.", record.ID, record.Status)
	}

	return s.Publish(n)
}

// PublishCalculated logs a payroll-generated notification for the HR team.
func (s *NotificationService) PublishCalculated(record *models.PayrollRecord) error {
	return s.Publish(domain.Notification{
		Type:        domain.NotifyPayrollCalculated,
		Title:       "Payroll Calculated",
		Message:     fmt.Sprintf("Payroll for %s (%s) is ready for approval.", record.EmployeeNo, record.PayMonth),
		RecipientID: domain.RecipientHRTeam,
		Data:        recordPayload(record),
		Timestamp:   time.Now(),
	})
}

// PublishPayslip logs a payslip-generated notification for the faculty member.
func (s *NotificationService) PublishPayslip(record *models.PayrollRecord) error {
	return s.Publish(domain.Notification{
		Type:        domain.NotifyPayslipGenerated,
		Title:       "Payslip Ready",
		Message:     fmt.Sprintf("Your payslip for %s is available.", record.PayMonth),
		RecipientID: record.EmployeeNo,
		Data:        recordPayload(record),
		Timestamp:   time.Now(),
	})
}

// PublishError logs a payroll processing error for operators.
func (s *NotificationService) PublishError(message string, data map[string]interface{}) error {
	return s.Publish(domain.Notification{
		Type:        domain.NotifyPayrollError,
		Title:       "Payroll Error",
		Message:     message,
		RecipientID: domain.RecipientSystem,
		Data:        data,
		Timestamp:   time.Now(),
	})
}

// Publish appends a notification to the log and fans it out to the delivery
// channels. Only log-append failures are surfaced; channel failures are
// swallowed after logging.
func (s *NotificationService) Publish(n domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}

	s.entries = append([]*domain.Notification{&n}, s.entries...)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
	s.mu.Unlock()

	for _, ch := range s.channels {
		if err := ch.Deliver(n); err != nil {
			log.Printf("⚠️ Notification delivery via %s failed: %v", ch.Name(), err)
		}
	}

	return nil
}

// List returns the notifications visible to a recipient, newest first: their
// own entries plus every broadcast entry.
func (s *NotificationService) List(recipientID string) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Notification, 0)
	for _, n := range s.entries {
		if s.visibleTo(n, recipientID) {
			result = append(result, *n)
		}
	}
	return result
}

// UnreadCount returns the number of unread notifications visible to a recipient.
func (s *NotificationService) UnreadCount(recipientID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.entries {
		if !n.Read && s.visibleTo(n, recipientID) {
			count++
		}
	}
	return count
}

// MarkAsRead marks a single notification as read.
func (s *NotificationService) MarkAsRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.entries {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// Clear removes only the given recipient's entries, leaving broadcast and
// other-recipient entries untouched. Returns the number removed.
func (s *NotificationService) Clear(recipientID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	removed := 0
	for _, n := range s.entries {
		if n.RecipientID == recipientID {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	s.entries = kept
	return removed
}

func (s *NotificationService) visibleTo(n *domain.Notification, recipientID string) bool {
	return n.RecipientID == recipientID || domain.IsBroadcastRecipient(n.RecipientID)
}

func recordPayload(record *models.PayrollRecord) map[string]interface{} {
	return map[string]interface{}{
		"payroll_id":  record.ID,
		"employee_no": record.EmployeeNo,
		"pay_month":   record.PayMonth,
		"net_salary":  record.NetSalary.StringFixed(2),
		"status":      record.Status,
	}
}

// ============================================================
// Delivery channels
// ============================================================

// WebhookChannel posts notifications to an external webhook (e.g. a campus
// chat integration). Disabled when no URL is configured.
type WebhookChannel struct {
	url    string
	client *http.Client
}

// NewWebhookChannel creates a webhook delivery channel.
func NewWebhookChannel(url string) *WebhookChannel {
	return &WebhookChannel{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *WebhookChannel) Name() string { return "webhook" }

func (c *WebhookChannel) Deliver(n domain.Notification) error {
	if c.url == "" {
		return nil
	}

	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	resp, err := c.client.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// LogChannel writes notifications to the process log. Useful in development
// and as a last-resort audit trail.
type LogChannel struct{}

func (LogChannel) Name() string { return "log" }

func (LogChannel) Deliver(n domain.Notification) error {
	log.Printf("🔔 [%s] %s → %s: %s", n.Type, n.Title, n.RecipientID, n.Message)
	return nil
}
