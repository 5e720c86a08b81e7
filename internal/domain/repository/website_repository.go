package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-backend/internal/domain/model"
)

type WebsiteRepository interface {
	Create(ctx context.Context, website *model.Website) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Website, error)
	GetBySlug(ctx context.Context, slug string) (*model.Website, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Website, error)
	// Delete removes the website only when it is owned by userID and reports
	// whether a row was actually deleted.
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}
