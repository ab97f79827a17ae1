package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// AttachmentList is a custom type to handle a JSON attachment-id array in GORM
type AttachmentList []string

// Value implements driver.Valuer
func (a AttachmentList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *AttachmentList) Scan(value interface{}) error {
	if value == nil {
		*a = AttachmentList{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	if len(bytes) == 0 {
		*a = AttachmentList{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// Email is the status-relevant subset of a mail message mirrored from the
// provider. The board core only reads it and conditionally rewrites Status
// and SnoozedUntil; everything else is owned by the mail-store collaborator.
// Status normally equals some column's status, but orphaned values (column
// deleted underneath) are tolerated and simply not displayed.
type Email struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	OwnerID      string         `json:"owner_id" gorm:"index:idx_owner_status;not null"`
	Status       string         `json:"status" gorm:"index:idx_owner_status;not null"`
	SnoozedUntil *time.Time     `json:"snoozed_until,omitempty"`
	Subject      string         `json:"subject"`
	From         string         `json:"from"`
	Preview      string         `json:"preview"`
	IsRead       bool           `json:"is_read"`
	Attachments  AttachmentList `json:"attachments,omitempty" gorm:"type:text"`
	ReceivedAt   time.Time      `json:"received_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// HasAttachments reports whether the message carries at least one attachment.
func (e *Email) HasAttachments() bool { return len(e.Attachments) > 0 }
