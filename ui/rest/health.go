package rest

import (
	"github.com/gofiber/fiber/v2"
	domainHealth "github.com/postpilothq/postpilot/domains/health"
	"github.com/postpilothq/postpilot/pkg/utils"
)

type Health struct {
	Service domainHealth.IHealthUsecase
}

func InitRestHealth(app fiber.Router, service domainHealth.IHealthUsecase) Health {
	handler := Health{Service: service}

	app.Get("/api/health", handler.Status)

	return handler
}

func (h *Health) Status(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Health status retrieved",
		Results: h.Service.Status(c.UserContext()),
	})
}
