package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-backend/internal/domain/model"
)

type SubscriberRepository interface {
	// EnsureExists inserts a subscriber row with subscribed=false if absent,
	// as a single atomic upsert keyed by user_id.
	EnsureExists(ctx context.Context, subscriber *model.Subscriber) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Subscriber, error)
	GetByProviderCustomerID(ctx context.Context, customerID string) (*model.Subscriber, error)
	Update(ctx context.Context, subscriber *model.Subscriber) error
}
