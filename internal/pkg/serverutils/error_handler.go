package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"knowledgebase-be/internal/pkg/apperrors"
	"knowledgebase-be/pkg/llm"
)

// ErrorHandlerMiddleware maps service errors to HTTP statuses so controllers
// can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Code, fe.Message))
		}

		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, ve.Error()))
		case errors.Is(err, apperrors.ErrUnsupportedFileType):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
		case errors.Is(err, apperrors.ErrDocumentNotFound),
			errors.Is(err, apperrors.ErrNoRelevantContext):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
		case errors.Is(err, apperrors.ErrServiceUnavailable), llm.IsTransient(err):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(fiber.StatusServiceUnavailable, err.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
