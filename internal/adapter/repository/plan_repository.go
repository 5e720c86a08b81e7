package repository

import (
	"context"
	"errors"

	"github.com/praxishq/praxis-backend/internal/domain/model"
	"github.com/praxishq/praxis-backend/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) repository.PlanRepository {
	return &planRepository{db: db}
}

// Upsert inserts or refreshes a plan row keyed by the provider price id, so
// repeated catalog syncs converge instead of duplicating rows.
func (r *planRepository) Upsert(ctx context.Context, plan *model.SitePlan) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider_price_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"provider_product_id", "display_name", "tier", "amount",
				"currency", "interval", "features", "is_active", "updated_at",
			}),
		}).
		Create(plan).Error
}

func (r *planRepository) GetByProviderPriceID(ctx context.Context, priceID string) (*model.SitePlan, error) {
	var plan model.SitePlan
	err := r.db.WithContext(ctx).Where("provider_price_id = ?", priceID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) GetByTier(ctx context.Context, tier string) (*model.SitePlan, error) {
	var plan model.SitePlan
	err := r.db.WithContext(ctx).
		Where("tier = ? AND is_active = ?", tier, true).
		Order("sort_order ASC").
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) ListActive(ctx context.Context) ([]model.SitePlan, error) {
	var plans []model.SitePlan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, amount ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}
