package controller

import (
	"knowledgebase-be/internal/pkg/serverutils"
	"knowledgebase-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	service service.IHealthService
}

func NewHealthController(service service.IHealthService) IHealthController {
	return &healthController{service: service}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	res, err := c.service.Check(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).
			JSON(serverutils.ErrorResponse(fiber.StatusServiceUnavailable, "Service unhealthy: "+err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Service health", res))
}
