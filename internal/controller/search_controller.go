package controller

import (
	"knowledgebase-be/internal/dto"
	"knowledgebase-be/internal/pkg/serverutils"
	"knowledgebase-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type searchController struct {
	service service.ISearchService
}

func NewSearchController(service service.ISearchService) ISearchController {
	return &searchController{service: service}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	r.Post("/search", c.Search)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Search results", res))
}
