// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/avaskin/contentforge/internal/model"
)

// UserRepository provides account storage.
type UserRepository interface {
	// Create inserts a new account and fills in its ID and creation time.
	Create(ctx context.Context, a *model.Account) error
	// GetByEmail loads an account by email.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	// GetByID loads an account by ID.
	GetByID(ctx context.Context, id int64) (*model.Account, error)
}
