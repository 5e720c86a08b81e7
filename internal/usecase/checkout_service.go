package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-backend/internal/domain/entity"
	domainErrors "github.com/praxishq/praxis-backend/internal/domain/errors"
	"github.com/praxishq/praxis-backend/internal/domain/model"
	"github.com/praxishq/praxis-backend/internal/domain/repository"
	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/customer"
	"go.uber.org/zap"
)

// CheckoutService implements the create-checkout flow: lazily creates the
// billing customer and returns a hosted checkout URL for the chosen plan.
type CheckoutService struct {
	subscriberRepo repository.SubscriberRepository
	planRepo       repository.PlanRepository
	clientURL      string
	logger         *zap.Logger
}

func NewCheckoutService(
	subscriberRepo repository.SubscriberRepository,
	planRepo repository.PlanRepository,
	clientURL string,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		subscriberRepo: subscriberRepo,
		planRepo:       planRepo,
		clientURL:      clientURL,
		logger:         logger,
	}
}

// CreateCheckout returns a hosted checkout session for tier ('pro' or
// 'enterprise'). The billing customer is created on first use and its id is
// persisted on the subscriber row so later flows find it without an email
// lookup.
func (s *CheckoutService) CreateCheckout(ctx context.Context, userID uuid.UUID, email, tier string) (*entity.CheckoutSession, error) {
	if tier != model.TierPro && tier != model.TierEnterprise {
		return nil, fmt.Errorf("%w: %q", domainErrors.ErrUnknownPlan, tier)
	}

	plan, err := s.planRepo.GetByTier(ctx, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to look up plan: %w", err)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: no active %s plan in catalog", domainErrors.ErrUnknownPlan, tier)
	}

	customerID, err := s.ensureCustomer(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(plan.ProviderPriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(s.clientURL + "/dashboard?checkout=success"),
		CancelURL:  stripe.String(s.clientURL + "/pricing?checkout=canceled"),
		Metadata: map[string]string{
			"user_id": userID.String(),
			"tier":    tier,
		},
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.Info("Checkout session created",
		zap.String("user_id", userID.String()),
		zap.String("session_id", session.ID),
		zap.String("tier", tier))

	return &entity.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// ensureCustomer returns the user's billing customer id, creating the
// customer (and the subscriber row, if it is somehow missing) on first use.
func (s *CheckoutService) ensureCustomer(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	if err := s.subscriberRepo.EnsureExists(ctx, &model.Subscriber{
		UserID: userID,
		Email:  email,
	}); err != nil {
		return "", fmt.Errorf("failed to ensure subscriber row: %w", err)
	}

	subscriber, err := s.subscriberRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load subscriber: %w", err)
	}
	if subscriber.ProviderCustomerID != nil {
		return *subscriber.ProviderCustomerID, nil
	}

	created, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			"user_id": userID.String(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create billing customer: %w", err)
	}

	s.logger.Info("Created billing customer",
		zap.String("user_id", userID.String()),
		zap.String("customer_id", created.ID))

	subscriber.ProviderCustomerID = &created.ID
	if err := s.subscriberRepo.Update(ctx, subscriber); err != nil {
		// The customer exists at the processor; losing the mapping only
		// costs an email lookup on the next check-subscription call.
		s.logger.Warn("Failed to persist billing customer id",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	return created.ID, nil
}
