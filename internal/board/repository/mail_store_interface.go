package repository

import (
	"time"

	boarddomain "mailboard/internal/board/domain"
)

// MailStore defines the email-side collaborator interface consumed by the
// board core. The mail collection is externally owned; the core only reads
// it and conditionally rewrites status and snoozed_until.
type MailStore interface {
	// Get a single email for an owner; nil, nil when it does not exist
	GetEmail(ownerID, emailID string) (*boarddomain.Email, error)
	// Get all emails for an owner
	FetchByOwner(ownerID string) ([]*boarddomain.Email, error)
	// Get all emails for an owner carrying the given status
	FetchByStatus(ownerID, status string) ([]*boarddomain.Email, error)
	// Point-update an email's status
	UpdateStatus(ownerID, emailID, status string) error
	// Point-update an email's snooze timestamp; nil clears it
	Snooze(ownerID, emailID string, until *time.Time) error
	// Conditional bulk update: rewrite every email of the owner whose
	// status equals oldStatus to newStatus, returning the matched count.
	// Idempotent: re-applying the same mapping matches zero rows.
	BulkRewriteStatus(ownerID, oldStatus, newStatus string) (int64, error)
	// Get all emails whose snooze timestamp has elapsed as of now
	FetchExpiredSnoozes(now time.Time) ([]*boarddomain.Email, error)
}
