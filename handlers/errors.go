package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lalankumar17/Automated-Examination-Management-System/services"
	"github.com/lalankumar17/Automated-Examination-Management-System/utils/response"
)

// RequestError marks a malformed body or query string
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// HandleServiceError writes the response for an error returned by a service
func HandleServiceError(c *fiber.Ctx, err error) error {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		conflictErr   *services.ConflictError
		scopeErr      *services.ScopeError
		requestErr    *RequestError
	)

	switch {
	case errors.As(err, &validationErr):
		return response.ValidationError(c, validationErr.Message, validationErr.Fields)
	case errors.As(err, &notFoundErr):
		return response.NotFound(c, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		var conflicts interface{}
		if len(conflictErr.Conflicts) > 0 {
			conflicts = conflictErr.Conflicts
		}
		return response.Conflict(c, conflictErr.Message, conflicts)
	case errors.As(err, &scopeErr):
		return response.ScopeError(c, scopeErr.Message)
	case errors.As(err, &requestErr):
		return response.BadRequest(c, requestErr.Message)
	default:
		log.Printf("[HTTP] %s %s failed: %v", c.Method(), c.Path(), err)
		return response.InternalServerError(c, "")
	}
}

// ParseScope reads the optional department and semester query parameters
func ParseScope(c *fiber.Ctx, policy services.Policy) (services.Scope, error) {
	var semester *int
	if raw := strings.TrimSpace(c.Query("semester")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return services.Scope{}, &RequestError{Message: fmt.Sprintf("semester must be an integer, got %q", raw)}
		}
		semester = &n
	}
	return policy.ResolveScope(c.Query("department"), semester)
}

// ParseBody decodes the JSON request body into out
func ParseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return &RequestError{Message: "Invalid request body"}
	}
	return nil
}
