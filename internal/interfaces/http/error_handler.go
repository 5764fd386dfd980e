package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/cronox/catalogo-api/internal/application/dto"
	"github.com/cronox/catalogo-api/internal/domain"
	"github.com/cronox/catalogo-api/pkg/logger"
)

// NewErrorHandler devuelve el ErrorHandler de Fiber que traduce la taxonomía de
// errores del dominio a códigos HTTP y al envelope de error, una sola vez en el
// borde. El core nunca formatea respuestas HTTP; los fallos no clasificados se
// loguean y salen como 500 con mensaje genérico, sin filtrar detalle interno.
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "error inesperado"

		var vErr *ValidationError
		var fErr *fiber.Error
		switch {
		case errors.As(err, &vErr):
			status = fiber.StatusBadRequest
			message = vErr.Error()
		case errors.Is(err, domain.ErrNotFound):
			status = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, domain.ErrDuplicateSKU),
			errors.Is(err, domain.ErrInsufficientStock),
			errors.Is(err, domain.ErrConflict):
			status = fiber.StatusUnprocessableEntity
			message = err.Error()
		case errors.Is(err, domain.ErrInvalidInput):
			status = fiber.StatusBadRequest
			message = err.Error()
		case errors.As(err, &fErr):
			status = fErr.Code
			message = fErr.Message
		default:
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no clasificado")
		}

		return c.Status(status).JSON(dto.ErrorResponse{
			Timestamp: time.Now().UTC(),
			Status:    status,
			Error:     utils.StatusMessage(status),
			Message:   message,
			Path:      c.Path(),
		})
	}
}
