package controller

import (
	"knowledgebase-be/internal/dto"
	"knowledgebase-be/internal/pkg/serverutils"
	"knowledgebase-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQAController interface {
	RegisterRoutes(r fiber.Router)
	Answer(ctx *fiber.Ctx) error
}

type qaController struct {
	service service.IQAService
}

func NewQAController(service service.IQAService) IQAController {
	return &qaController{service: service}
}

func (c *qaController) RegisterRoutes(r fiber.Router) {
	r.Post("/qa", c.Answer)
}

func (c *qaController) Answer(ctx *fiber.Ctx) error {
	var req dto.QARequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Answer(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Question answered", res))
}
