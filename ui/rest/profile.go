package rest

import (
	"github.com/gofiber/fiber/v2"
	domainProfile "github.com/postpilothq/postpilot/domains/profile"
	"github.com/postpilothq/postpilot/pkg/utils"
)

type Profile struct {
	Service domainProfile.IProfileUsecase
}

func InitRestProfile(app fiber.Router, service domainProfile.IProfileUsecase) Profile {
	handler := Profile{Service: service}

	group := app.Group("/api/profile")
	group.Get("/", handler.Get)
	group.Put("/", handler.Update)
	group.Post("/topics", handler.AddTopic)
	group.Delete("/topics/:topic", handler.RemoveTopic)
	group.Put("/autopilot", handler.SetAutoPilot)

	return handler
}

func (h *Profile) Get(c *fiber.Ctx) error {
	profile, err := h.Service.Get(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Profile retrieved",
		Results: profile,
	})
}

func (h *Profile) Update(c *fiber.Ctx) error {
	var request domainProfile.UpdateProfileRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	profile, err := h.Service.Update(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Profile updated",
		Results: profile,
	})
}

func (h *Profile) AddTopic(c *fiber.Ctx) error {
	var request domainProfile.AddTopicRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	profile, err := h.Service.AddTopic(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Topic added",
		Results: profile,
	})
}

func (h *Profile) RemoveTopic(c *fiber.Ctx) error {
	topic := c.Params("topic")

	profile, err := h.Service.RemoveTopic(c.UserContext(), topic)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Topic removed",
		Results: profile,
	})
}

func (h *Profile) SetAutoPilot(c *fiber.Ctx) error {
	var request domainProfile.SetAutoPilotRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	profile, err := h.Service.SetAutoPilot(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	message := "Auto-Pilot disengaged"
	if request.Enabled {
		message = "Auto-Pilot engaged"
	}
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: message,
		Results: profile,
	})
}
