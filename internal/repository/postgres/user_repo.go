package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/avaskin/contentforge/internal/errs"
	"github.com/avaskin/contentforge/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new account row and reads back its generated ID and timestamp.
func (r *UserRepo) Create(ctx context.Context, a *model.Account) error {
	const q = `
INSERT INTO users (email, pwd_hash, salt_auth)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	err := r.db.Pool.QueryRow(ctx, q, a.Email, a.PwdHash, a.SaltAuth).Scan(&a.ID, &a.CreatedAt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByEmail selects an account by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	const q = `
SELECT id, email, pwd_hash, salt_auth, created_at
FROM users WHERE email=$1`
	row := r.db.Pool.QueryRow(ctx, q, email)
	var a model.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PwdHash, &a.SaltAuth, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByID selects an account by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	const q = `
SELECT id, email, pwd_hash, salt_auth, created_at
FROM users WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var a model.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PwdHash, &a.SaltAuth, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
