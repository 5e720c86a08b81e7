package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/price"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/praxishq/praxis-backend/internal/domain/model"
	"github.com/praxishq/praxis-backend/internal/domain/repository"
)

// PlanSyncService mirrors the billing processor's price catalog into the
// site_plans table. Prices are the source of truth; the local rows exist so
// the public plans endpoint and tier resolution never call the processor on
// the request path.
type PlanSyncService struct {
	planRepo repository.PlanRepository
	logger   *zap.Logger
}

// NewPlanSyncService creates a new plan synchronization service
func NewPlanSyncService(planRepo repository.PlanRepository, logger *zap.Logger) *PlanSyncService {
	return &PlanSyncService{
		planRepo: planRepo,
		logger:   logger,
	}
}

// SyncFromStripe lists all active recurring prices and upserts a plan row
// for each one. Individual price failures are logged and skipped so one bad
// price does not block the rest of the catalog.
func (s *PlanSyncService) SyncFromStripe(ctx context.Context) (int, error) {
	params := &stripe.PriceListParams{
		Active: stripe.Bool(true),
		Type:   stripe.String(string(stripe.PriceTypeRecurring)),
	}
	params.AddExpand("data.product")

	synced := 0
	iter := price.List(params)
	for iter.Next() {
		p := iter.Price()
		if p.Product == nil {
			s.logger.Warn("Skipping price without product", zap.String("price_id", p.ID))
			continue
		}

		if err := s.upsertPrice(ctx, p); err != nil {
			s.logger.Error("Failed to sync price",
				zap.String("price_id", p.ID),
				zap.Error(err))
			continue
		}
		synced++
	}

	if err := iter.Err(); err != nil {
		return synced, fmt.Errorf("error listing prices: %w", err)
	}

	s.logger.Info("Plan sync complete", zap.Int("synced", synced))
	return synced, nil
}

// upsertPrice maps one processor price onto a SitePlan row.
func (s *PlanSyncService) upsertPrice(ctx context.Context, p *stripe.Price) error {
	prod := p.Product

	tier := tierForProduct(prod)
	if tier == "" {
		s.logger.Debug("Skipping price with no resolvable tier",
			zap.String("price_id", p.ID),
			zap.String("product_name", prod.Name))
		return nil
	}

	features := make(model.Features)
	if featuresJSON, ok := prod.Metadata["features"]; ok {
		if err := json.Unmarshal([]byte(featuresJSON), &features); err != nil {
			s.logger.Warn("Ignoring malformed features metadata",
				zap.String("product_id", prod.ID),
				zap.Error(err))
			features = make(model.Features)
		}
	}
	// Human-readable amount for display, derived from the minor-unit price.
	features["display_amount"] = decimal.NewFromInt(p.UnitAmount).
		Div(decimal.NewFromInt(100)).StringFixed(2)
	if prod.Description != "" {
		features["description"] = prod.Description
	}

	sortOrder := 0
	if order, ok := prod.Metadata["sort_order"]; ok {
		fmt.Sscanf(order, "%d", &sortOrder)
	}

	interval := ""
	if p.Recurring != nil {
		interval = string(p.Recurring.Interval)
	}

	plan := &model.SitePlan{
		ProviderPriceID:   p.ID,
		ProviderProductID: prod.ID,
		DisplayName:       prod.Name,
		Tier:              tier,
		Amount:            p.UnitAmount,
		Currency:          string(p.Currency),
		Interval:          interval,
		Features:          features,
		SortOrder:         sortOrder,
		IsActive:          p.Active && prod.Active,
	}

	return s.planRepo.Upsert(ctx, plan)
}

// tierForProduct resolves the plan tier from product metadata, falling back
// to a name match. Returns "" if the product is not one of ours.
func tierForProduct(prod *stripe.Product) string {
	if tier, ok := prod.Metadata["tier"]; ok {
		switch tier {
		case model.TierPro, model.TierEnterprise:
			return tier
		}
	}

	name := strings.ToLower(prod.Name)
	switch {
	case strings.Contains(name, "enterprise"):
		return model.TierEnterprise
	case strings.Contains(name, "pro"):
		return model.TierPro
	}
	return ""
}

// planFile is the on-disk catalog format used when syncing without a
// processor connection (local development, seed data).
type planFile struct {
	Plans []struct {
		PriceID     string                 `yaml:"price_id"`
		ProductID   string                 `yaml:"product_id"`
		DisplayName string                 `yaml:"display_name"`
		Tier        string                 `yaml:"tier"`
		Amount      int64                  `yaml:"amount"`
		Currency    string                 `yaml:"currency"`
		Interval    string                 `yaml:"interval"`
		Features    map[string]interface{} `yaml:"features"`
		SortOrder   int                    `yaml:"sort_order"`
	} `yaml:"plans"`
}

// SyncFromYAML loads a plan catalog from a YAML file and upserts each entry.
func (s *PlanSyncService) SyncFromYAML(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read plan file: %w", err)
	}

	var file planFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to parse plan file: %w", err)
	}

	synced := 0
	for _, entry := range file.Plans {
		if entry.Tier != model.TierPro && entry.Tier != model.TierEnterprise {
			s.logger.Warn("Skipping plan with unknown tier",
				zap.String("price_id", entry.PriceID),
				zap.String("tier", entry.Tier))
			continue
		}

		features := model.Features(entry.Features)
		if features == nil {
			features = make(model.Features)
		}

		plan := &model.SitePlan{
			ProviderPriceID:   entry.PriceID,
			ProviderProductID: entry.ProductID,
			DisplayName:       entry.DisplayName,
			Tier:              entry.Tier,
			Amount:            entry.Amount,
			Currency:          entry.Currency,
			Interval:          entry.Interval,
			Features:          features,
			SortOrder:         entry.SortOrder,
			IsActive:          true,
		}
		if err := s.planRepo.Upsert(ctx, plan); err != nil {
			s.logger.Error("Failed to upsert plan from file",
				zap.String("price_id", entry.PriceID),
				zap.Error(err))
			continue
		}
		synced++
	}

	s.logger.Info("Plan file sync complete", zap.Int("synced", synced), zap.String("path", path))
	return synced, nil
}
