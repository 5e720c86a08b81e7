package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/praxishq/praxis-backend/internal/identity"
)

type HealthHandler struct {
	serviceName string
	version     string
	bridge      *identity.Bridge
}

func NewHealthHandler(serviceName, version string, bridge *identity.Bridge) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		bridge:      bridge,
	}
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"service": h.serviceName,
		"version": h.version,
	})
}

// AuthStatus reports the data-plane auth bridge state. Used by readiness
// probes: the service can serve public routes while unauthenticated, but
// data-backed routes need an authenticated bridge.
func (h *HealthHandler) AuthStatus(c echo.Context) error {
	snap := h.bridge.Snapshot()

	status := http.StatusOK
	if snap.State == identity.StateErrored {
		status = http.StatusServiceUnavailable
	}

	resp := echo.Map{
		"state":            string(snap.State),
		"is_authenticated": snap.IsAuthenticated,
		"is_loading":       snap.IsLoading,
	}
	if snap.Err != nil {
		resp["error"] = snap.Err.Error()
	}

	return c.JSON(status, resp)
}
