package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-backend/internal/domain/model"
)

type ProfileRepository interface {
	// EnsureExists inserts a profile row for the user if absent. The insert
	// is a single atomic upsert so two concurrent first-contact flows cannot
	// race each other into a unique-constraint error.
	EnsureExists(ctx context.Context, profile *model.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
}
