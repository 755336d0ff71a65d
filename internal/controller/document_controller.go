package controller

import (
	"knowledgebase-be/internal/pkg/serverutils"
	"knowledgebase-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(service service.IDocumentService) IDocumentController {
	return &documentController{service: service}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/documents")
	h.Post("/upload", c.Upload)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
	h.Delete("/:id", c.Delete)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Document file is required"))
	}

	res, err := c.service.Upload(ctx.Context(), file)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document uploaded", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document list", res))
}

func (c *documentController) Get(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document detail", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	res, err := c.service.Delete(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document deleted successfully", res))
}
