package usecase

import (
	"context"

	boarddomain "mailboard/internal/board/domain"
)

// ColumnPatch is a field-level column update. Nil fields are left untouched.
// The column id is immutable; an id in the request body is ignored.
type ColumnPatch struct {
	Title         *string `json:"title"`
	Color         *string `json:"color"`
	Icon          *string `json:"icon"`
	ProviderLabel *string `json:"providerLabel"`
	Order         *int    `json:"order"`
}

// LabelSyncer pushes provider label changes when a card moves between
// columns with label bindings. Implementations are best-effort; the board
// status write never depends on them.
type LabelSyncer interface {
	ModifyLabels(ctx context.Context, ownerID, emailID string, addLabelIDs, removeLabelIDs []string) error
}

// LabelLister enumerates the owner's provider labels, keyed by id. Optional
// capability of a LabelSyncer; the column label picker degrades to an empty
// listing without it.
type LabelLister interface {
	ListLabels(ctx context.Context, ownerID string) (map[string]string, error)
}

// BoardUsecase defines the interface for board configuration and email
// status transitions
type BoardUsecase interface {
	// Get the owner's columns, seeding the default set on first access
	ListColumns(ownerID string) ([]boarddomain.Column, error)
	// Replace the whole column set: validate, re-derive statuses, migrate
	// affected emails, then commit
	ReplaceColumns(ownerID string, columns []boarddomain.Column, clientMigrations map[string]string) ([]boarddomain.Column, *MigrationReport, error)
	// Append a single column
	AddColumn(ownerID string, column boarddomain.Column) ([]boarddomain.Column, error)
	// Remove a column; deleting the last remaining column is rejected
	RemoveColumn(ownerID, columnID string) ([]boarddomain.Column, error)
	// Merge a partial update into a column
	PatchColumn(ownerID, columnID string, patch ColumnPatch) (*boarddomain.Column, *MigrationReport, error)

	// Move an email to the column with the given id (drag-and-drop)
	MoveEmail(ctx context.Context, ownerID, emailID, targetColumnID string) (*boarddomain.Email, error)
	// Snooze an email for the given number of hours (default when <= 0)
	SnoozeEmail(ctx context.Context, ownerID, emailID string, hours int) (*boarddomain.Email, error)
	// Clear an email's snooze and return it to the default column
	UnsnoozeEmail(ctx context.Context, ownerID, emailID string) (*boarddomain.Email, error)
	// Restore every email whose snooze window has elapsed
	WakeExpiredSnoozes(ctx context.Context) error
	// List the provider labels available for column bindings
	ListProviderLabels(ctx context.Context, ownerID string) (map[string]string, error)

	// Project the owner's board: per-column buckets with filters and sort
	Board(ownerID string, opts ProjectionOptions) (*BoardSnapshot, error)
}
