package repository

import boarddomain "mailboard/internal/board/domain"

// BoardConfigRepository defines the interface for board configuration storage
type BoardConfigRepository interface {
	// Get the configuration row for an owner; nil, nil when none exists
	GetByOwner(ownerID string) (*boarddomain.BoardConfig, error)
	// Insert the default configuration if the owner has none yet.
	// Must be a single owner-keyed upsert so concurrent first reads collapse.
	Seed(cfg *boarddomain.BoardConfig) error
	// Persist the full configuration row
	Save(cfg *boarddomain.BoardConfig) error
}
