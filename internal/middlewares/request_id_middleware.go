package middlewares

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

const requestIDLocalsKey = "requestID"

// RequestIDMiddleware tags every request with a correlation id. An id sent
// by the caller is kept, otherwise one is generated.
func RequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestID := c.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Locals(requestIDLocalsKey, requestID)
		c.Set(requestIDHeader, requestID)

		return c.Next()
	}
}

// RequestIDFrom returns the correlation id assigned to the request.
func RequestIDFrom(c fiber.Ctx) string {
	requestID, ok := c.Locals(requestIDLocalsKey).(string)
	if !ok {
		return ""
	}

	return requestID
}
