package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Details   map[string]string `json:"details,omitempty"`
	Conflicts interface{}       `json:"conflicts,omitempty"`
}

// Success returns data as a 200 response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created returns a 201 Created response
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// Message returns a 200 response carrying only a message
func Message(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

// Error returns an error response
func Error(c *fiber.Ctx, statusCode int, message string, code string) error {
	return c.Status(statusCode).JSON(ErrorBody{
		Error: message,
		Code:  code,
	})
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message, "BAD_REQUEST")
}

// NotFound returns a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, fiber.StatusNotFound, message, "NOT_FOUND")
}

// Conflict returns a 409 Conflict response, listing the blocking conflicts when there are any
func Conflict(c *fiber.Ctx, message string, conflicts interface{}) error {
	return c.Status(fiber.StatusConflict).JSON(ErrorBody{
		Error:     message,
		Code:      "CONFLICT",
		Conflicts: conflicts,
	})
}

// ScopeError returns a 400 response for an unusable department/semester filter
func ScopeError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message, "SCOPE_ERROR")
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return Error(c, fiber.StatusTooManyRequests, message, "TOO_MANY_REQUESTS")
}

// ValidationError returns a 422 Unprocessable Entity response for validation errors
func ValidationError(c *fiber.Ctx, message string, details map[string]string) error {
	if message == "" {
		message = "Validation failed"
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorBody{
		Error:   message,
		Code:    "VALIDATION_ERROR",
		Details: details,
	})
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return Error(c, fiber.StatusInternalServerError, message, "INTERNAL_ERROR")
}

// ServiceUnavailable returns a 503 Service Unavailable response
func ServiceUnavailable(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	return Error(c, fiber.StatusServiceUnavailable, message, "SERVICE_UNAVAILABLE")
}
