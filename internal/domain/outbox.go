package domain

import "time"

// EmailKind distinguishes outbox email templates
type EmailKind string

const (
	EmailConfirmation EmailKind = "confirmation"
	EmailReminder     EmailKind = "reminder"
)

// EmailStatus is the delivery state of an outbox email
type EmailStatus string

const (
	EmailPending EmailStatus = "pending"
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
)

// OutboxEmail is a transactional email enqueued in the same transaction as
// the booking it confirms, so a crash between commit and send cannot lose it.
// All display data is denormalized at enqueue time.
type OutboxEmail struct {
	ID            int64
	Kind          EmailKind
	VisitID       string
	Recipient     string
	ParentName    string
	ChildName     *string
	UnitName      string
	VisitDateTime time.Time
	SlotStart     time.Time
	SlotEnd       time.Time
	Status        EmailStatus
	Attempts      int
	LastError     *string
	CreatedAt     time.Time
	SentAt        *time.Time
}
