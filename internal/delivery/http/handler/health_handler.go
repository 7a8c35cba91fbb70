package handler

import (
	"context"
	"time"

	"hr-recruitment/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	appName string
}

func NewHealthHandler(db Pinger, appName string) *HealthHandler {
	return &HealthHandler{db: db, appName: appName}
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	data := map[string]any{"status": "OK", "timestamp": time.Now().UTC()}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			data["status"] = "DEGRADED"
			data["database"] = "unreachable"
			return response.Error(c, fiber.StatusServiceUnavailable, "Database unreachable", "", data)
		}
		data["database"] = "ok"
	}
	return response.Success(c, fiber.StatusOK, "", data)
}

func (h *HealthHandler) Banner(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, h.appName+" API is running", nil)
}
