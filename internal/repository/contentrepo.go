package repository

import (
	"context"

	"github.com/avaskin/contentforge/internal/model"
)

// ContentRepository stores generation records, always scoped to their owner.
type ContentRepository interface {
	// Create inserts a generation and fills in its ID and creation time.
	Create(ctx context.Context, g *model.Generation) error
	// ListByUser returns up to limit generations for a user, newest first.
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.Generation, error)
	// GetByID returns one generation owned by the user.
	GetByID(ctx context.Context, userID, id int64) (*model.Generation, error)
	// Delete removes one generation owned by the user.
	Delete(ctx context.Context, userID, id int64) error
}
