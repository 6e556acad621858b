package service

import (
	"context"
	"fmt"

	"github.com/avaskin/contentforge/internal/ai"
	"github.com/avaskin/contentforge/internal/errs"
	"github.com/avaskin/contentforge/internal/model"
	"github.com/avaskin/contentforge/internal/repository"
)

// ContentService defines generation and history operations.
type ContentService interface {
	// Generate produces content for the request and stores the record.
	Generate(ctx context.Context, userID int64, req model.GenerationRequest) (model.GenerationResult, error)
	// History returns the user's stored generations, newest first.
	History(ctx context.Context, userID int64, limit int) ([]model.ContentHistoryItem, error)
	// GetOne returns a single stored generation owned by the user.
	GetOne(ctx context.Context, userID, id int64) (model.ContentHistoryItem, error)
	// Delete removes a stored generation owned by the user.
	Delete(ctx context.Context, userID, id int64) error
}

const defaultHistoryLimit = 50

type ContentServiceImpl struct {
	repo repository.ContentRepository
	gen  ai.Generator
}

// NewContentService constructs ContentService with required dependencies.
func NewContentService(repo repository.ContentRepository, gen ai.Generator) *ContentServiceImpl {
	return &ContentServiceImpl{repo: repo, gen: gen}
}

// Generate runs the AI generator and persists the result with its
// originating request fields.
func (s *ContentServiceImpl) Generate(ctx context.Context, userID int64, req model.GenerationRequest) (model.GenerationResult, error) {
	if userID <= 0 {
		return model.GenerationResult{}, fmt.Errorf("empty userID: %w", errs.ErrValidation)
	}
	content, modelUsed, err := s.gen.Generate(ctx, req)
	if err != nil {
		return model.GenerationResult{}, fmt.Errorf("content generation failed: %w", err)
	}

	g := &model.Generation{
		UserID:            userID,
		ContentType:       req.ContentType,
		Tone:              req.Tone,
		Length:            req.Length,
		Product:           req.Product,
		Audience:          req.Audience,
		ExtraInstructions: req.ExtraInstructions,
		GeneratedContent:  content,
		ModelUsed:         modelUsed,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return model.GenerationResult{}, err
	}
	return model.GenerationResult{
		ID:               g.ID,
		GeneratedContent: g.GeneratedContent,
		ModelUsed:        g.ModelUsed,
		CreatedAt:        g.CreatedAt,
	}, nil
}

// History lists stored generations, newest first.
func (s *ContentServiceImpl) History(ctx context.Context, userID int64, limit int) ([]model.ContentHistoryItem, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("empty userID: %w", errs.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	gens, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]model.ContentHistoryItem, 0, len(gens))
	for _, g := range gens {
		items = append(items, g.HistoryItem())
	}
	return items, nil
}

// GetOne fetches a single stored generation by id.
func (s *ContentServiceImpl) GetOne(ctx context.Context, userID, id int64) (model.ContentHistoryItem, error) {
	if userID <= 0 || id <= 0 {
		return model.ContentHistoryItem{}, fmt.Errorf("empty userID/id: %w", errs.ErrValidation)
	}
	g, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return model.ContentHistoryItem{}, err
	}
	return g.HistoryItem(), nil
}

// Delete removes a stored generation by id.
func (s *ContentServiceImpl) Delete(ctx context.Context, userID, id int64) error {
	if userID <= 0 || id <= 0 {
		return fmt.Errorf("empty userID/id: %w", errs.ErrValidation)
	}
	return s.repo.Delete(ctx, userID, id)
}
