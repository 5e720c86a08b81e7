package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainerrors "github.com/praxishq/praxis-backend/internal/domain/errors"
	"github.com/praxishq/praxis-backend/internal/middleware/auth"
	"github.com/praxishq/praxis-backend/internal/sitegen"
	"github.com/praxishq/praxis-backend/internal/usecase"
)

type WebsiteHandler struct {
	websiteService *usecase.WebsiteService
	validate       *validator.Validate
	logger         *zap.Logger
}

func NewWebsiteHandler(websiteService *usecase.WebsiteService, logger *zap.Logger) *WebsiteHandler {
	return &WebsiteHandler{
		websiteService: websiteService,
		validate:       validator.New(),
		logger:         logger,
	}
}

type CreateWebsiteRequest struct {
	TemplateID string               `json:"template_id" validate:"required"`
	Practice   sitegen.PracticeInfo `json:"practice"`
}

// CreateWebsite generates template content for the caller's practice and
// persists a new website row under a unique slug.
func (h *WebsiteHandler) CreateWebsite(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req CreateWebsiteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Field 'template_id' is required",
			"code":  "VALIDATION_FAILURE",
		})
	}

	website, err := h.websiteService.Create(c.Request().Context(), user.InternalID, req.TemplateID, req.Practice)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrInvalidPracticeInfo):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Practice name and specialty are required",
				"code":  "VALIDATION_FAILURE",
			})
		case errors.Is(err, domainerrors.ErrSlugTaken):
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "A site with this name already exists",
				"code":  "SLUG_TAKEN",
			})
		}
		h.logger.Error("Error creating website",
			zap.String("user_id", user.InternalID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create website",
		})
	}

	return c.JSON(http.StatusCreated, website)
}

// ListWebsites returns the caller's websites, newest first.
func (h *WebsiteHandler) ListWebsites(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	websites, err := h.websiteService.List(c.Request().Context(), user.InternalID)
	if err != nil {
		h.logger.Error("Error listing websites", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to list websites",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"websites": websites,
	})
}

// GetWebsite returns a single website owned by the caller.
func (h *WebsiteHandler) GetWebsite(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid website ID",
		})
	}

	website, err := h.websiteService.Get(c.Request().Context(), id, user.InternalID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrWebsiteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Website not found",
			})
		}
		h.logger.Error("Error fetching website", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to fetch website",
		})
	}

	return c.JSON(http.StatusOK, website)
}

// DeleteWebsite removes a website owned by the caller.
func (h *WebsiteHandler) DeleteWebsite(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid website ID",
		})
	}

	if err := h.websiteService.Delete(c.Request().Context(), id, user.InternalID); err != nil {
		if errors.Is(err, domainerrors.ErrWebsiteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Website not found",
			})
		}
		h.logger.Error("Error deleting website", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete website",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
