package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"github.com/praxishq/praxis-backend/internal/domain/model"
)

func subscriptionWithPrice(priceID string, unitAmount int64) *stripe.Subscription {
	return &stripe.Subscription{
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{Price: &stripe.Price{ID: priceID, UnitAmount: unitAmount}},
			},
		},
	}
}

func TestSubscriptionService_TierForSubscription(t *testing.T) {
	tests := []struct {
		name      string
		sub       *stripe.Subscription
		mockSetup func(*MockPlanRepository)
		expected  string
	}{
		{
			name: "catalog match wins over amount",
			sub:  subscriptionWithPrice("price_ent", 1000),
			mockSetup: func(repo *MockPlanRepository) {
				repo.On("GetByProviderPriceID", mock.Anything, "price_ent").
					Return(&model.SitePlan{ProviderPriceID: "price_ent", Tier: model.TierEnterprise}, nil)
			},
			expected: model.TierEnterprise,
		},
		{
			name: "uncataloged high amount is enterprise",
			sub:  subscriptionWithPrice("price_x", 9900),
			mockSetup: func(repo *MockPlanRepository) {
				repo.On("GetByProviderPriceID", mock.Anything, "price_x").Return(nil, nil)
			},
			expected: model.TierEnterprise,
		},
		{
			name: "uncataloged low amount is pro",
			sub:  subscriptionWithPrice("price_y", 2900),
			mockSetup: func(repo *MockPlanRepository) {
				repo.On("GetByProviderPriceID", mock.Anything, "price_y").Return(nil, nil)
			},
			expected: model.TierPro,
		},
		{
			name: "threshold boundary stays pro",
			sub:  subscriptionWithPrice("price_z", 4900),
			mockSetup: func(repo *MockPlanRepository) {
				repo.On("GetByProviderPriceID", mock.Anything, "price_z").Return(nil, nil)
			},
			expected: model.TierPro,
		},
		{
			name: "catalog lookup failure falls back to amount",
			sub:  subscriptionWithPrice("price_w", 9900),
			mockSetup: func(repo *MockPlanRepository) {
				repo.On("GetByProviderPriceID", mock.Anything, "price_w").
					Return(nil, errors.New("db down"))
			},
			expected: model.TierEnterprise,
		},
		{
			name:      "subscription without items defaults to pro",
			sub:       &stripe.Subscription{Items: &stripe.SubscriptionItemList{}},
			mockSetup: func(repo *MockPlanRepository) {},
			expected:  model.TierPro,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planRepo := new(MockPlanRepository)
			tt.mockSetup(planRepo)

			service := NewSubscriptionService(new(MockSubscriberRepository), planRepo, zap.NewNop())

			tier := service.tierForSubscription(context.Background(), tt.sub)
			assert.Equal(t, tt.expected, tier)
		})
	}
}
