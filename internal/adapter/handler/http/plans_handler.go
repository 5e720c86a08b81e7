package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/praxishq/praxis-backend/internal/domain/entity"
	"github.com/praxishq/praxis-backend/internal/domain/model"
	"github.com/praxishq/praxis-backend/internal/domain/repository"
)

type PlansHandler struct {
	planRepo repository.PlanRepository
	logger   *zap.Logger
}

func NewPlansHandler(planRepo repository.PlanRepository, logger *zap.Logger) *PlansHandler {
	return &PlansHandler{planRepo: planRepo, logger: logger}
}

// GetPlans returns the active plan catalog. The rows are the synced mirror
// of the billing processor's prices, so this endpoint never calls out.
func (h *PlansHandler) GetPlans(c echo.Context) error {
	rows, err := h.planRepo.ListActive(c.Request().Context())
	if err != nil {
		h.logger.Error("Error fetching plans", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to fetch plans",
		})
	}

	plans := make([]entity.Plan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, planFromModel(row))
	}

	h.logger.Debug("Plans fetched successfully", zap.Int("active_plans", len(plans)))

	if len(plans) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"plans":   []entity.Plan{},
			"message": "No active plans found.",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"plans": plans,
	})
}

func planFromModel(row model.SitePlan) entity.Plan {
	plan := entity.Plan{
		ID:       row.ProviderPriceID,
		Name:     row.DisplayName,
		Tier:     row.Tier,
		Amount:   row.Amount,
		Currency: row.Currency,
		Interval: row.Interval,
	}
	if desc, ok := row.Features["description"].(string); ok {
		plan.Description = desc
	}
	if plan.Name == "" {
		plan.Name = "Unnamed Plan"
	}
	return plan
}
