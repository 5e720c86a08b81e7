package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/praxishq/praxis-backend/internal/middleware/auth"
	"github.com/praxishq/praxis-backend/internal/usecase"
)

type OnboardingHandler struct {
	onboardingService *usecase.OnboardingService
	logger            *zap.Logger
}

func NewOnboardingHandler(onboardingService *usecase.OnboardingService, logger *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingService: onboardingService,
		logger:            logger,
	}
}

// CompleteOnboarding records the finished wizard: local rows plus the
// provider-side metadata flags the client reads on next sign-in.
func (h *OnboardingHandler) CompleteOnboarding(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var input usecase.CompletionInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.onboardingService.Complete(c.Request().Context(), user.InternalID, user.ExternalID, user.Email, input); err != nil {
		h.logger.Error("Onboarding completion failed",
			zap.String("user_id", user.InternalID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to complete onboarding",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "complete",
	})
}
