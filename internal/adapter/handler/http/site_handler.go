package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainerrors "github.com/praxishq/praxis-backend/internal/domain/errors"
	"github.com/praxishq/praxis-backend/internal/usecase"
)

type SiteHandler struct {
	websiteService *usecase.WebsiteService
	logger         *zap.Logger
}

func NewSiteHandler(websiteService *usecase.WebsiteService, logger *zap.Logger) *SiteHandler {
	return &SiteHandler{websiteService: websiteService, logger: logger}
}

// ServeSite renders the published landing page for a slug. This route is
// public; sites are meant to be shared.
func (h *SiteHandler) ServeSite(c echo.Context) error {
	slug := c.Param("slug")

	html, err := h.websiteService.PublishHTML(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, domainerrors.ErrWebsiteNotFound) {
			return c.HTML(http.StatusNotFound, "<h1>Site not found</h1>")
		}
		h.logger.Error("Error rendering site",
			zap.String("slug", slug),
			zap.Error(err))
		return c.HTML(http.StatusInternalServerError, "<h1>Something went wrong</h1>")
	}

	return c.HTML(http.StatusOK, html)
}
