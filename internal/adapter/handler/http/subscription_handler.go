package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/praxishq/praxis-backend/internal/middleware/auth"
	"github.com/praxishq/praxis-backend/internal/usecase"
)

type SubscriptionHandler struct {
	subscriptionService *usecase.SubscriptionService
	logger              *zap.Logger
}

func NewSubscriptionHandler(subscriptionService *usecase.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		logger:              logger,
	}
}

// CheckSubscription reconciles the caller's subscription state against the
// billing processor and returns the result. Identity comes entirely from the
// validated token; the body is ignored.
func (h *SubscriptionHandler) CheckSubscription(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	if user.Email == "" {
		h.logger.Warn("Token has no email claim",
			zap.String("user_id", user.InternalID.String()))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Token does not carry an email claim",
			"code":  "MISSING_EMAIL_CLAIM",
		})
	}

	status, err := h.subscriptionService.CheckSubscription(c.Request().Context(), user.InternalID, user.Email)
	if err != nil {
		h.logger.Error("Subscription check failed",
			zap.String("user_id", user.InternalID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to check subscription",
		})
	}

	return c.JSON(http.StatusOK, status)
}
