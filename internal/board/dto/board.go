package dto

import (
	boarddomain "mailboard/internal/board/domain"
	"mailboard/internal/board/usecase"
)

// ConfigData wraps the column list in the config envelope.
type ConfigData struct {
	Columns []boarddomain.Column `json:"columns"`
}

// ConfigResponse is the envelope for configuration reads and writes.
// Warnings carries soft migration failures: the column commit succeeded
// even when entries are present here.
type ConfigResponse struct {
	Success    bool                           `json:"success"`
	Data       ConfigData                     `json:"data"`
	Migrations []usecase.MigrationResult      `json:"migrations,omitempty"`
	Warnings   []boarddomain.MigrationFailure `json:"warnings,omitempty"`
}

// ReplaceConfigRequest is the PUT config body. StatusMigrations lets the
// client request extra old→new email rewrites alongside the computed plan.
type ReplaceConfigRequest struct {
	Columns          []boarddomain.Column `json:"columns" binding:"required"`
	StatusMigrations map[string]string    `json:"statusMigrations"`
}

// MoveEmailRequest is the drag-and-drop body.
type MoveEmailRequest struct {
	ColumnID string `json:"columnId" binding:"required"`
}

// SnoozeRequest is the explicit snooze body; zero hours means the default
// one-hour window.
type SnoozeRequest struct {
	Hours int `json:"hours"`
}

// EmailResponse wraps a single email after a transition.
type EmailResponse struct {
	Success bool               `json:"success"`
	Data    *boarddomain.Email `json:"data"`
}
