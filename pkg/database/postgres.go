package database

import (
	"mailboard/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresConnection opens the GORM Postgres connection from config
func NewPostgresConnection(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
}
