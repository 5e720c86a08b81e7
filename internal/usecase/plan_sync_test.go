package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"github.com/praxishq/praxis-backend/internal/domain/model"
)

// MockPlanRepository is a mock implementation of PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Upsert(ctx context.Context, plan *model.SitePlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) GetByProviderPriceID(ctx context.Context, priceID string) (*model.SitePlan, error) {
	args := m.Called(ctx, priceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SitePlan), args.Error(1)
}

func (m *MockPlanRepository) GetByTier(ctx context.Context, tier string) (*model.SitePlan, error) {
	args := m.Called(ctx, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SitePlan), args.Error(1)
}

func (m *MockPlanRepository) ListActive(ctx context.Context) ([]model.SitePlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SitePlan), args.Error(1)
}

func TestTierForProduct(t *testing.T) {
	tests := []struct {
		name     string
		product  *stripe.Product
		expected string
	}{
		{
			name:     "explicit tier metadata wins",
			product:  &stripe.Product{Name: "Anything", Metadata: map[string]string{"tier": "enterprise"}},
			expected: model.TierEnterprise,
		},
		{
			name:     "invalid tier metadata falls back to name",
			product:  &stripe.Product{Name: "Pro Plan", Metadata: map[string]string{"tier": "gold"}},
			expected: model.TierPro,
		},
		{
			name:     "enterprise by name",
			product:  &stripe.Product{Name: "Praxis Enterprise"},
			expected: model.TierEnterprise,
		},
		{
			name:     "pro by name",
			product:  &stripe.Product{Name: "Praxis Pro Monthly"},
			expected: model.TierPro,
		},
		{
			name:     "unrelated product has no tier",
			product:  &stripe.Product{Name: "Consulting Hours"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tierForProduct(tt.product))
		})
	}
}

func TestPlanSyncService_SyncFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(`plans:
  - price_id: price_pro
    product_id: prod_pro
    display_name: Pro
    tier: pro
    amount: 2900
    currency: usd
    interval: month
    sort_order: 1
    features:
      description: One practice site
  - price_id: price_ent
    product_id: prod_ent
    display_name: Enterprise
    tier: enterprise
    amount: 9900
    currency: usd
    interval: month
    sort_order: 2
  - price_id: price_bogus
    display_name: Legacy
    tier: gold
`), 0o644))

	planRepo := new(MockPlanRepository)
	var upserted []*model.SitePlan
	planRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.SitePlan")).
		Run(func(args mock.Arguments) {
			upserted = append(upserted, args.Get(1).(*model.SitePlan))
		}).Return(nil)

	service := NewPlanSyncService(planRepo, zap.NewNop())

	synced, err := service.SyncFromYAML(context.Background(), path)
	assert.NoError(t, err)
	// The unknown-tier entry is skipped, not an error.
	assert.Equal(t, 2, synced)
	assert.Len(t, upserted, 2)

	assert.Equal(t, "price_pro", upserted[0].ProviderPriceID)
	assert.Equal(t, model.TierPro, upserted[0].Tier)
	assert.Equal(t, int64(2900), upserted[0].Amount)
	assert.Equal(t, "One practice site", upserted[0].Features["description"])
	assert.True(t, upserted[0].IsActive)

	assert.Equal(t, model.TierEnterprise, upserted[1].Tier)
	assert.NotNil(t, upserted[1].Features)
}

func TestPlanSyncService_SyncFromYAML_MissingFile(t *testing.T) {
	service := NewPlanSyncService(new(MockPlanRepository), zap.NewNop())

	_, err := service.SyncFromYAML(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
