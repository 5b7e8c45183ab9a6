package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

const apiVersion = "1.0.0"

// Pinger reports store connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store Pinger
}

func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

// GET /api/
func (ct *HealthController) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Article Registry API",
		"version": apiVersion,
	})
}

// GET /api/health
func (ct *HealthController) Health(c *fiber.Ctx) error {
	if err := ct.store.Ping(c.Context()); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "database connection failed")
	}
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"database": "connected",
	})
}
