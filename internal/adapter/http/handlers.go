package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is a dependency the health check pings.
type Pinger func(ctx context.Context) error

type Handler struct{ deps map[string]Pinger }

func NewHandler() *Handler { return &Handler{deps: map[string]Pinger{}} }

func (h *Handler) WithDependency(name string, p Pinger) *Handler {
	h.deps[name] = p
	return h
}

// Health reports ok, or 503 with the failing dependencies.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	failing := map[string]string{}
	for name, ping := range h.deps {
		if err := ping(ctx); err != nil {
			failing[name] = err.Error()
		}
	}
	if len(failing) > 0 {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	body := map[string]any{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if len(failing) > 0 {
		body["failing"] = failing
	}
	return c.JSON(code, body)
}
