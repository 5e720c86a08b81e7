package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-backend/internal/domain/entity"
	"github.com/praxishq/praxis-backend/internal/domain/model"
	"github.com/praxishq/praxis-backend/internal/domain/repository"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/customer"
	"github.com/stripe/stripe-go/v79/subscription"
	"go.uber.org/zap"
)

// SubscriptionService implements the check-subscription flow: it reconciles
// the local subscriber row with the billing processor's view of the
// customer's subscriptions.
type SubscriptionService struct {
	subscriberRepo repository.SubscriberRepository
	planRepo       repository.PlanRepository
	logger         *zap.Logger
}

func NewSubscriptionService(
	subscriberRepo repository.SubscriberRepository,
	planRepo repository.PlanRepository,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subscriberRepo: subscriberRepo,
		planRepo:       planRepo,
		logger:         logger,
	}
}

// Amount threshold separating the pro and enterprise tiers when a price is
// not in the synced plan catalog (cents).
const proTierMaxAmount = 4900

// CheckSubscription ensures a subscriber row exists for the user (atomic
// upsert, so concurrent first contacts cannot race), locates the billing
// customer by stored id or email lookup, and refreshes the row from the
// processor's active subscriptions.
func (s *SubscriptionService) CheckSubscription(ctx context.Context, userID uuid.UUID, email string) (*entity.SubscriptionStatus, error) {
	if err := s.subscriberRepo.EnsureExists(ctx, &model.Subscriber{
		UserID: userID,
		Email:  email,
	}); err != nil {
		return nil, fmt.Errorf("failed to ensure subscriber row: %w", err)
	}

	subscriber, err := s.subscriberRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriber: %w", err)
	}

	customerID := ""
	if subscriber.ProviderCustomerID != nil {
		customerID = *subscriber.ProviderCustomerID
	} else if email != "" {
		customerID, err = s.findCustomerByEmail(email)
		if err != nil {
			return nil, err
		}
	}

	if customerID == "" {
		s.logger.Info("No billing customer for user, reporting unsubscribed",
			zap.String("user_id", userID.String()))
		return s.persistStatus(ctx, subscriber, nil, "")
	}

	activeSub, err := s.findActiveSubscription(customerID)
	if err != nil {
		return nil, err
	}

	return s.persistStatus(ctx, subscriber, activeSub, customerID)
}

func (s *SubscriptionService) findCustomerByEmail(email string) (string, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Limit = stripe.Int64(1)

	iter := customer.List(params)
	for iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("error listing customers: %w", err)
	}
	return "", nil
}

func (s *SubscriptionService) findActiveSubscription(customerID string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String("all"),
	}
	params.AddExpand("data.items.data.price")

	iter := subscription.List(params)
	for iter.Next() {
		sub := iter.Subscription()
		if sub.Status == stripe.SubscriptionStatusActive || sub.Status == stripe.SubscriptionStatusTrialing {
			return sub, nil
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error listing subscriptions: %w", err)
	}
	return nil, nil
}

// tierForSubscription resolves the tier from the synced plan catalog, with
// an amount threshold as fallback for prices created outside the sync.
func (s *SubscriptionService) tierForSubscription(ctx context.Context, sub *stripe.Subscription) string {
	if len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return model.TierPro
	}
	price := sub.Items.Data[0].Price

	plan, err := s.planRepo.GetByProviderPriceID(ctx, price.ID)
	if err != nil {
		s.logger.Warn("Failed to look up plan for price",
			zap.String("price_id", price.ID),
			zap.Error(err))
	}
	if plan != nil {
		return plan.Tier
	}

	if price.UnitAmount > proTierMaxAmount {
		return model.TierEnterprise
	}
	return model.TierPro
}

func (s *SubscriptionService) persistStatus(ctx context.Context, subscriber *model.Subscriber, sub *stripe.Subscription, customerID string) (*entity.SubscriptionStatus, error) {
	subscriber.Subscribed = sub != nil
	subscriber.SubscriptionTier = nil
	subscriber.SubscriptionEnd = nil
	if customerID != "" {
		subscriber.ProviderCustomerID = &customerID
	}

	if sub != nil {
		tier := s.tierForSubscription(ctx, sub)
		end := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		subscriber.SubscriptionTier = &tier
		subscriber.SubscriptionEnd = &end

		s.logger.Info("Active subscription found",
			zap.String("user_id", subscriber.UserID.String()),
			zap.String("subscription_id", sub.ID),
			zap.String("tier", tier),
			zap.Time("period_end", end))
	}

	if err := s.subscriberRepo.Update(ctx, subscriber); err != nil {
		return nil, fmt.Errorf("failed to persist subscription status: %w", err)
	}

	return &entity.SubscriptionStatus{
		Subscribed:       subscriber.Subscribed,
		SubscriptionTier: subscriber.SubscriptionTier,
		SubscriptionEnd:  subscriber.SubscriptionEnd,
	}, nil
}
