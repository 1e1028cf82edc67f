package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/simp-lee/agencyhub/internal/domain"
)

// Migrate creates or updates the tables and indexes of every domain model.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: db is nil")
	}
	if err := db.WithContext(ctx).AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
