package rest

import (
	"github.com/gofiber/fiber/v2"
	domainGenerate "github.com/postpilothq/postpilot/domains/generate"
	"github.com/postpilothq/postpilot/pkg/utils"
)

type Generate struct {
	Service domainGenerate.IGenerateUsecase
}

func InitRestGenerate(app fiber.Router, service domainGenerate.IGenerateUsecase) Generate {
	handler := Generate{Service: service}

	app.Post("/api/generate", handler.Generate)

	return handler
}

func (h *Generate) Generate(c *fiber.Ctx) error {
	var request domainGenerate.GenerateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	result, err := h.Service.Generate(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	message := "Content generated"
	if result.Fallback {
		message = "Provider unavailable, placeholder content returned"
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: message,
		Results: result,
	})
}
