package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Column represents one workflow stage of an owner's board. Columns are
// persisted as a JSON array inside the owner's BoardConfig row, so only
// BoardConfig carries GORM tags.
type Column struct {
	ID            string `json:"id"`
	Status        string `json:"status,omitempty"` // slug stored on emails; unique per owner
	Title         string `json:"title"`
	Color         string `json:"color"`
	Icon          string `json:"icon"`
	ProviderLabel string `json:"providerLabel,omitempty"` // external mailbox label, unique per owner when set
	Order         int    `json:"order"`
}

// ColumnList is a custom type to handle a JSON column array in GORM
type ColumnList []Column

// Value implements driver.Valuer
func (l ColumnList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *ColumnList) Scan(value interface{}) error {
	if value == nil {
		*l = ColumnList{}
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
		*l = ColumnList{}
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// BoardConfig is the per-owner column configuration. One row per owner;
// first-read seeding is a single upsert keyed by owner_id so concurrent
// first reads cannot create duplicate default sets.
type BoardConfig struct {
	OwnerID        string     `json:"owner_id" gorm:"primaryKey;column:owner_id"`
	Columns        ColumnList `json:"columns" gorm:"type:text"`
	SnoozeColumnID string     `json:"snooze_column_id"` // column designated as the snooze target
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// StatusMigration is one entry of the migration map computed on save:
// emails carrying OldStatus are rewritten to NewStatus.
type StatusMigration struct {
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

// Presentation tags are closed enumerations; the core never branches on
// them beyond membership validation, lookup tables live at the rendering
// boundary.
var (
	columnColors = map[string]bool{
		"gray": true, "red": true, "orange": true, "yellow": true,
		"green": true, "teal": true, "blue": true, "purple": true, "pink": true,
	}
	columnIcons = map[string]bool{
		"inbox": true, "list": true, "check": true, "clock": true,
		"star": true, "flag": true, "archive": true, "tag": true,
	}
)

// ValidColor reports whether c is a known presentation color tag.
func ValidColor(c string) bool { return columnColors[c] }

// ValidIcon reports whether i is a known presentation icon tag.
func ValidIcon(i string) bool { return columnIcons[i] }
