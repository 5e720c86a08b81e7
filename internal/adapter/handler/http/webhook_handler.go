package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"github.com/praxishq/praxis-backend/internal/domain/model"
	"github.com/praxishq/praxis-backend/internal/domain/repository"
	"github.com/praxishq/praxis-backend/internal/usecase"
)

type WebhookHandler struct {
	webhookSecret       string
	subscriberRepo      repository.SubscriberRepository
	planRepo            repository.PlanRepository
	subscriptionService *usecase.SubscriptionService
	planSync            *usecase.PlanSyncService
	logger              *zap.Logger
}

func NewWebhookHandler(
	webhookSecret string,
	subscriberRepo repository.SubscriberRepository,
	planRepo repository.PlanRepository,
	subscriptionService *usecase.SubscriptionService,
	planSync *usecase.PlanSyncService,
	logger *zap.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		webhookSecret:       webhookSecret,
		subscriberRepo:      subscriberRepo,
		planRepo:            planRepo,
		subscriptionService: subscriptionService,
		planSync:            planSync,
		logger:              logger,
	}
}

// HandleWebhook verifies the processor's signature and applies the event to
// local state. Events we do not track are acknowledged and dropped so the
// processor stops retrying them.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Error reading request body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error reading request body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(
		body,
		sig,
		h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)

	if err != nil {
		h.logger.Error("Webhook signature verification failed",
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Webhook signature verification failed",
		})
	}

	h.logger.Info("Webhook event received",
		zap.String("type", string(event.Type)),
		zap.String("id", event.ID),
		zap.Time("created", time.Unix(event.Created, 0)),
	)

	ctx := c.Request().Context()

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		err = h.handleCheckoutCompleted(ctx, event.Data.Raw)
	case stripe.EventTypeCustomerSubscriptionUpdated:
		err = h.handleSubscriptionUpdated(ctx, event.Data.Raw)
	case stripe.EventTypeCustomerSubscriptionDeleted:
		err = h.handleSubscriptionDeleted(ctx, event.Data.Raw)
	case stripe.EventTypePriceCreated, stripe.EventTypePriceUpdated, stripe.EventTypeProductUpdated:
		// Catalog changed upstream; refresh the local plan mirror.
		_, err = h.planSync.SyncFromStripe(ctx)
	default:
		h.logger.Debug("Ignoring webhook event", zap.String("type", string(event.Type)))
	}

	if err != nil {
		h.logger.Error("Webhook processing failed",
			zap.String("type", string(event.Type)),
			zap.String("id", event.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Webhook processing failed",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

// handleCheckoutCompleted reconciles the purchasing user right away instead
// of waiting for their next subscription check.
func (h *WebhookHandler) handleCheckoutCompleted(ctx context.Context, raw json.RawMessage) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return err
	}

	h.logger.Info("Checkout session completed",
		zap.String("session_id", session.ID),
		zap.String("payment_status", string(session.PaymentStatus)))

	userIDRaw, ok := session.Metadata["user_id"]
	if !ok {
		h.logger.Warn("Checkout session has no user_id metadata",
			zap.String("session_id", session.ID))
		return nil
	}
	userID, err := uuid.Parse(userIDRaw)
	if err != nil {
		h.logger.Warn("Checkout session has malformed user_id metadata",
			zap.String("session_id", session.ID),
			zap.String("user_id", userIDRaw))
		return nil
	}

	email := session.CustomerEmail
	if email == "" && session.CustomerDetails != nil {
		email = session.CustomerDetails.Email
	}
	if email == "" {
		h.logger.Warn("Checkout session has no customer email",
			zap.String("session_id", session.ID))
		return nil
	}

	_, err = h.subscriptionService.CheckSubscription(ctx, userID, email)
	return err
}

func (h *WebhookHandler) handleSubscriptionUpdated(ctx context.Context, raw json.RawMessage) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		return err
	}
	if sub.Customer == nil {
		return nil
	}

	subscriber, err := h.subscriberRepo.GetByProviderCustomerID(ctx, sub.Customer.ID)
	if err != nil {
		return err
	}
	if subscriber == nil {
		// The customer has not gone through check-subscription yet; their
		// next check will pick up the state from the processor directly.
		h.logger.Debug("No subscriber row for customer",
			zap.String("customer_id", sub.Customer.ID))
		return nil
	}

	active := sub.Status == stripe.SubscriptionStatusActive || sub.Status == stripe.SubscriptionStatusTrialing
	subscriber.Subscribed = active
	if active {
		tier := h.tierForSubscription(ctx, &sub)
		subscriber.SubscriptionTier = &tier
		end := time.Unix(sub.CurrentPeriodEnd, 0)
		subscriber.SubscriptionEnd = &end
	} else {
		subscriber.SubscriptionTier = nil
		subscriber.SubscriptionEnd = nil
	}

	h.logger.Info("Subscription state updated from webhook",
		zap.String("customer_id", sub.Customer.ID),
		zap.String("status", string(sub.Status)),
		zap.Bool("subscribed", active))

	return h.subscriberRepo.Update(ctx, subscriber)
}

func (h *WebhookHandler) handleSubscriptionDeleted(ctx context.Context, raw json.RawMessage) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		return err
	}
	if sub.Customer == nil {
		return nil
	}

	subscriber, err := h.subscriberRepo.GetByProviderCustomerID(ctx, sub.Customer.ID)
	if err != nil {
		return err
	}
	if subscriber == nil {
		return nil
	}

	subscriber.Subscribed = false
	subscriber.SubscriptionTier = nil
	subscriber.SubscriptionEnd = nil

	h.logger.Info("Subscription canceled via webhook",
		zap.String("customer_id", sub.Customer.ID))

	return h.subscriberRepo.Update(ctx, subscriber)
}

// tierForSubscription resolves the tier from the synced plan mirror, falling
// back to the amount threshold used by the subscription check flow.
func (h *WebhookHandler) tierForSubscription(ctx context.Context, sub *stripe.Subscription) string {
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		price := sub.Items.Data[0].Price
		if plan, err := h.planRepo.GetByProviderPriceID(ctx, price.ID); err == nil && plan != nil {
			return plan.Tier
		}
		if price.UnitAmount > 4900 {
			return model.TierEnterprise
		}
	}
	return model.TierPro
}
