package model

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&ChatSession{},
		&ChatMessage{},
	}
}

// Migrate creates the sessions and messages relations, their indexes and the
// cascading foreign key if they are absent. Safe to run on every start.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
