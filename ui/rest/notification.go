package rest

import (
	"github.com/gofiber/fiber/v2"
	pilotDomain "github.com/postpilothq/postpilot/pilot/domain"
	"github.com/postpilothq/postpilot/pkg/utils"
)

type Notification struct {
	Store pilotDomain.INotificationStore
}

func InitRestNotification(app fiber.Router, store pilotDomain.INotificationStore) Notification {
	handler := Notification{Store: store}

	group := app.Group("/api/notifications")
	group.Get("/", handler.List)
	group.Delete("/:id", handler.Remove)

	return handler
}

func (h *Notification) List(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Notifications retrieved",
		Results: h.Store.List(c.UserContext()),
	})
}

func (h *Notification) Remove(c *fiber.Ctx) error {
	h.Store.Remove(c.UserContext(), c.Params("id"))

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Notification dismissed",
	})
}
