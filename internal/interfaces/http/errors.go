package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/domain"
)

// Códigos de error expuestos en ErrorResponse.Code.
const (
	CodeValidation        = "VALIDATION"
	CodeInvalidBody       = "INVALID_BODY"
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicate         = "DUPLICATE"
	CodeParentNotFound    = "PARENT_NOT_FOUND"
	CodeCyclicParent      = "CYCLIC_PARENT"
	CodeHasDependents     = "HAS_DEPENDENTS"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL"
)

// writeError traduce un error de dominio a status HTTP + ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: "datos inválidos", Fields: verr.Fields}
	case errors.Is(err, domain.ErrParentNotFound):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeParentNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrCyclicParent):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeCyclicParent, Message: err.Error()}
	case errors.Is(err, domain.ErrHasDependents):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeHasDependents, Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeDuplicate, Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeInsufficientStock, Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeConflict, Message: err.Error()}
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return ferr.Code, dto.ErrorResponse{Code: fiberCode(ferr.Code), Message: ferr.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error interno del servidor"}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return CodeInvalidBody
	}
	return CodeInternal
}

// ErrorHandler reemplaza el handler por defecto de fiber (rutas inexistentes, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, err)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}
