package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/avaskin/contentforge/internal/errs"
	"github.com/avaskin/contentforge/internal/model"
)

// ContentRepo implements ContentRepository using PostgreSQL.
type ContentRepo struct{ db *DB }

// NewContentRepo constructs a content repository.
func NewContentRepo(db *DB) *ContentRepo { return &ContentRepo{db: db} }

// Create inserts a generation row and reads back its generated ID and timestamp.
func (r *ContentRepo) Create(ctx context.Context, g *model.Generation) error {
	const q = `
INSERT INTO content_generations
  (user_id, content_type, tone, length, product, audience, extra_instructions, generated_content, model_used)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q,
		g.UserID, g.ContentType, g.Tone, g.Length,
		g.Product, g.Audience, g.ExtraInstructions,
		g.GeneratedContent, g.ModelUsed,
	).Scan(&g.ID, &g.CreatedAt)
}

// ListByUser returns up to limit generations for a user, newest first.
func (r *ContentRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]model.Generation, error) {
	const q = `
SELECT id, user_id, content_type, tone, length, product, audience, extra_instructions, generated_content, model_used, created_at
FROM content_generations
WHERE user_id=$1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.db.Pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Generation
	for rows.Next() {
		var g model.Generation
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.ContentType, &g.Tone, &g.Length,
			&g.Product, &g.Audience, &g.ExtraInstructions,
			&g.GeneratedContent, &g.ModelUsed, &g.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetByID returns one generation owned by the user.
func (r *ContentRepo) GetByID(ctx context.Context, userID, id int64) (*model.Generation, error) {
	const q = `
SELECT id, user_id, content_type, tone, length, product, audience, extra_instructions, generated_content, model_used, created_at
FROM content_generations
WHERE id=$1 AND user_id=$2`
	row := r.db.Pool.QueryRow(ctx, q, id, userID)
	var g model.Generation
	if err := row.Scan(
		&g.ID, &g.UserID, &g.ContentType, &g.Tone, &g.Length,
		&g.Product, &g.Audience, &g.ExtraInstructions,
		&g.GeneratedContent, &g.ModelUsed, &g.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// Delete removes one generation owned by the user.
func (r *ContentRepo) Delete(ctx context.Context, userID, id int64) error {
	const q = `DELETE FROM content_generations WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
