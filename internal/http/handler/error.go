package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"docview/internal/http/middleware"
	"docview/internal/pipeline"
	"docview/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "FILE_REQUIRED", "NO_DOCUMENT", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	middleware.SetErrorCode(c, code)
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeViewError translates viewer and pipeline errors. Validation messages
// are shown as-is; parse and I/O details stay in the logs.
func writeViewError(c *fiber.Ctx, err error) error {
	var verr *pipeline.ValidationError
	var perr *pipeline.ParseError
	var ioErr *pipeline.IOError
	switch {
	case errors.As(err, &verr):
		return writeError(c, fiber.StatusBadRequest, verr.Code, verr.Message)
	case errors.Is(err, service.ErrSuperseded):
		return writeError(c, fiber.StatusConflict, "SUPERSEDED", "a newer document replaced this one")
	case errors.Is(err, service.ErrNoDocument):
		return writeError(c, fiber.StatusNotFound, "NO_DOCUMENT", "no document is open")
	case errors.As(err, &perr), errors.As(err, &ioErr),
		errors.Is(err, pipeline.ErrNoReader), errors.Is(err, context.DeadlineExceeded):
		return writeError(c, fiber.StatusUnprocessableEntity, "READ_FAILED", pipeline.GenericFailureMessage)
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, pipeline.CodeFileTooLarge, "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
