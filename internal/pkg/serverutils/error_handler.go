package serverutils

import (
	"errors"

	"fluentko-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors returned by handlers into the
// standard response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		code, message := StatusFromError(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func StatusFromError(err error) (int, string) {
	var validationErr *apperror.ValidationError
	var notFoundErr *apperror.NotFoundError
	var gatewayErr *apperror.GatewayError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Error()
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound, notFoundErr.Error()
	case errors.As(err, &gatewayErr):
		return fiber.StatusBadGateway, "upstream AI provider unavailable"
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}
