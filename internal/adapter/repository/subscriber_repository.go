package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-backend/internal/domain/model"
	"github.com/praxishq/praxis-backend/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) repository.SubscriberRepository {
	return &subscriberRepository{db: db}
}

// EnsureExists inserts the subscriber row if absent, keyed by user_id, as a
// single atomic upsert.
func (r *subscriberRepository) EnsureExists(ctx context.Context, subscriber *model.Subscriber) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(subscriber).Error
}

func (r *subscriberRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Subscriber, error) {
	var subscriber model.Subscriber
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&subscriber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

func (r *subscriberRepository) GetByProviderCustomerID(ctx context.Context, customerID string) (*model.Subscriber, error) {
	var subscriber model.Subscriber
	err := r.db.WithContext(ctx).Where("provider_customer_id = ?", customerID).First(&subscriber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

func (r *subscriberRepository) Update(ctx context.Context, subscriber *model.Subscriber) error {
	return r.db.WithContext(ctx).Save(subscriber).Error
}
