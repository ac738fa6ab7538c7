package rest

import (
	"github.com/gofiber/fiber/v2"
	domainPost "github.com/postpilothq/postpilot/domains/post"
	"github.com/postpilothq/postpilot/pkg/utils"
)

type Post struct {
	Service domainPost.IPostUsecase
}

func InitRestPost(app fiber.Router, service domainPost.IPostUsecase) Post {
	handler := Post{Service: service}

	group := app.Group("/api/posts")
	group.Get("/", handler.List)
	group.Post("/", handler.PostNow)
	group.Post("/schedule", handler.Schedule)
	group.Get("/:id", handler.Get)
	group.Delete("/:id", handler.Delete)

	return handler
}

func (h *Post) List(c *fiber.Ctx) error {
	posts, err := h.Service.List(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Posts retrieved",
		Results: posts,
	})
}

func (h *Post) Get(c *fiber.Ctx) error {
	post, err := h.Service.Get(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Post retrieved",
		Results: post,
	})
}

func (h *Post) PostNow(c *fiber.Ctx) error {
	var request domainPost.CreatePostRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	post, err := h.Service.PostNow(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Post published",
		Results: post,
	})
}

func (h *Post) Schedule(c *fiber.Ctx) error {
	var request domainPost.SchedulePostRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	post, err := h.Service.Schedule(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Post scheduled",
		Results: post,
	})
}

func (h *Post) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	err := h.Service.Delete(c.UserContext(), id)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Post deleted",
	})
}
