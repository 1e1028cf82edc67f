package pkg

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// WithTx runs fn inside a transaction bound to ctx. The transaction commits
// when fn returns nil and rolls back when fn fails or panics; a panic is
// re-raised after the rollback. Errors from fn are returned unwrapped.
func WithTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		tx.Rollback()
		if r := recover(); r != nil {
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}
