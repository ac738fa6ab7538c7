package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/postpilothq/postpilot/pilot/application"
	"github.com/postpilothq/postpilot/pkg/utils"
)

type AutoPilot struct {
	Engine *application.AutoPilotEngine
}

func InitRestAutoPilot(app fiber.Router, engine *application.AutoPilotEngine) AutoPilot {
	handler := AutoPilot{Engine: engine}

	app.Get("/api/autopilot/status", handler.Status)

	return handler
}

func (h *AutoPilot) Status(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Auto-Pilot status retrieved",
		Results: h.Engine.Status(),
	})
}
