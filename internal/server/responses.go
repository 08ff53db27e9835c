package server

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/julianstephens/habitboard/internal/errors"
	"github.com/julianstephens/habitboard/internal/logger"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, apperrors.ErrInvalidDate):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrUnknownHabit), errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Path(), "error", err)
		message = "internal error"
	}
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: message,
	})
}

func badRequest(message string) error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}
