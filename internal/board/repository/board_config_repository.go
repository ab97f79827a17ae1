package repository

import (
	"time"

	boarddomain "mailboard/internal/board/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// boardConfigRepository implements BoardConfigRepository interface
type boardConfigRepository struct {
	db *gorm.DB
}

// NewBoardConfigRepository creates a new instance of boardConfigRepository
func NewBoardConfigRepository(db *gorm.DB) BoardConfigRepository {
	return &boardConfigRepository{
		db: db,
	}
}

// GetByOwner gets the configuration row for an owner
func (r *boardConfigRepository) GetByOwner(ownerID string) (*boarddomain.BoardConfig, error) {
	var cfg boarddomain.BoardConfig
	err := r.db.Where("owner_id = ?", ownerID).First(&cfg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	if cfg.Columns == nil {
		cfg.Columns = boarddomain.ColumnList{}
	}

	return &cfg, nil
}

// Seed inserts the default configuration for an owner. The insert is keyed
// by owner_id with DO NOTHING on conflict, so two racing first reads end up
// with exactly one default set.
func (r *boardConfigRepository) Seed(cfg *boarddomain.BoardConfig) error {
	cfg.CreatedAt = time.Now()
	cfg.UpdatedAt = time.Now()

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		DoNothing: true,
	}).Create(cfg).Error
}

// Save persists the full configuration row
func (r *boardConfigRepository) Save(cfg *boarddomain.BoardConfig) error {
	cfg.UpdatedAt = time.Now()

	if cfg.Columns == nil {
		cfg.Columns = boarddomain.ColumnList{}
	}

	return r.db.Save(cfg).Error
}
