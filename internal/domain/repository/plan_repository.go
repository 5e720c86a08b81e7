package repository

import (
	"context"

	"github.com/praxishq/praxis-backend/internal/domain/model"
)

type PlanRepository interface {
	Upsert(ctx context.Context, plan *model.SitePlan) error
	GetByProviderPriceID(ctx context.Context, priceID string) (*model.SitePlan, error)
	GetByTier(ctx context.Context, tier string) (*model.SitePlan, error)
	ListActive(ctx context.Context) ([]model.SitePlan, error)
}
