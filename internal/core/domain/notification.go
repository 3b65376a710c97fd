package domain

import "time"

// NotificationType classifies payroll notifications
type NotificationType string

const (
	NotifyPayrollCalculated NotificationType = "PayrollCalculated"
	NotifyPayrollApproved   NotificationType = "PayrollApproved"
	NotifyPayrollPaid       NotificationType = "PayrollPaid"
	NotifyPayslipGenerated  NotificationType = "PayslipGenerated"
	NotifyPayrollError      NotificationType = "PayrollError"
)

// Broadcast recipients match every notification query regardless of the
// querying user, enabling group-visible notifications without per-user
// fan-out writes.
const (
	RecipientHRTeam = "HR_TEAM"
	RecipientSystem = "SYSTEM"
)

// IsBroadcastRecipient reports whether id is a broadcast pseudo-recipient.
func IsBroadcastRecipient(id string) bool {
	return id == RecipientHRTeam || id == RecipientSystem
}

// Notification is an in-memory event log entry keyed by recipient.
// RecipientID is a faculty employee number or a broadcast pseudo-id.
type Notification struct {
	ID          string                 `json:"id"`
	Type        NotificationType       `json:"type"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	RecipientID string                 `json:"recipient_id"`
	Data        map[string]interface{} `json:"data,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
	Read        bool                   `json:"read"`
}
