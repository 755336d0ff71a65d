package controller

import (
	"knowledgebase-be/internal/dto"
	"knowledgebase-be/internal/pkg/serverutils"
	"knowledgebase-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICompletenessController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type completenessController struct {
	service service.ICompletenessService
}

func NewCompletenessController(service service.ICompletenessService) ICompletenessController {
	return &completenessController{service: service}
}

func (c *completenessController) RegisterRoutes(r fiber.Router) {
	r.Post("/completeness", c.Check)
}

func (c *completenessController) Check(ctx *fiber.Ctx) error {
	var req dto.CompletenessRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Check(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Completeness assessment", res))
}
