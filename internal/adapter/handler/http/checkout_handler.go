package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainerrors "github.com/praxishq/praxis-backend/internal/domain/errors"
	"github.com/praxishq/praxis-backend/internal/middleware/auth"
	"github.com/praxishq/praxis-backend/internal/usecase"
)

type CheckoutHandler struct {
	checkoutService *usecase.CheckoutService
	validate        *validator.Validate
	logger          *zap.Logger
}

func NewCheckoutHandler(checkoutService *usecase.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validate:        validator.New(),
		logger:          logger,
	}
}

type CreateCheckoutRequest struct {
	Plan string `json:"plan" validate:"required"`
}

// CreateCheckout opens a hosted checkout session for the requested tier and
// returns its redirect URL.
func (h *CheckoutHandler) CreateCheckout(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req CreateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Field 'plan' is required",
			"code":  "VALIDATION_FAILURE",
		})
	}

	h.logger.Info("Creating checkout session...",
		zap.String("user_id", user.InternalID.String()),
		zap.String("plan", req.Plan))

	session, err := h.checkoutService.CreateCheckout(c.Request().Context(), user.InternalID, user.Email, req.Plan)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUnknownPlan) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Unknown plan: " + req.Plan,
				"code":  "UNKNOWN_PLAN",
			})
		}
		h.logger.Error("Error creating checkout session", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create checkout session",
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":  session.ID,
		"url": session.URL,
	})
}
