package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey stores the request id in Fiber's context locals.
	RequestIDLocalKey = "request_id"
	// ErrorCodeLocalKey holds the error code a handler responded with, for the access log.
	ErrorCodeLocalKey = "error_code"

	maxRequestIDLen = 128
)

// RequestID tags every request with an id that ends up in the error envelope
// and the access log. A well-formed incoming X-Request-ID is kept; anything
// else is replaced with a fresh UUID.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}

// RequestIDFrom returns the id stored by RequestID, or "".
func RequestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDLocalKey).(string)
	return id
}

// SetErrorCode records the error code of the response for the access log.
func SetErrorCode(c *fiber.Ctx, code string) {
	c.Locals(ErrorCodeLocalKey, code)
}

// ErrorCodeFrom returns the code recorded by SetErrorCode, or "".
func ErrorCodeFrom(c *fiber.Ctx) string {
	code, _ := c.Locals(ErrorCodeLocalKey).(string)
	return code
}

// validRequestID accepts short ids of printable ASCII without spaces, so a
// client id can be echoed into headers and log lines as-is.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
