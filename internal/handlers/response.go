package handlers

import (
	"errors"
	"fmt"

	"blog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserIDKey is the fiber.Ctx locals key holding the authenticated user id.
const UserIDKey = "user_id"

// currentUserID returns the id the auth middleware stored for this request.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(UserIDKey).(uint)
	return id
}

// paramID reads a positive numeric route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return uint(id), nil
}

// PageQuery holds the pagination parameters shared by listing routes.
type PageQuery struct {
	Offset int    `query:"offset"`
	Limit  *int   `query:"limit"`
	Search string `query:"search"`
}

// parsePageQuery reads PageQuery from the query string. An empty limit counts as
// absent.
func parsePageQuery(c *fiber.Ctx) (PageQuery, error) {
	var q PageQuery
	if err := c.QueryParser(&q); err != nil {
		return PageQuery{}, err
	}
	if c.Query("limit") == "" {
		q.Limit = nil
	}
	return q, nil
}

func (q PageQuery) limit() int {
	if q.Limit == nil {
		return services.MaxPageSize
	}
	return *q.Limit
}

// parseBody decodes and validates the request body into out. It writes the
// error response itself and reports whether the handler may continue.
func parseBody(c *fiber.Ctx, validate *validator.Validate, log *zap.Logger, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		log.Debug("error parsing request body", zap.String("path", c.Path()), zap.Error(err))
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, err
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return true, nil
}

// invalidRequest answers a malformed path or query parameter.
func invalidRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// respondError maps a service error to its HTTP status. Unknown errors are logged
// and answered with a generic 500.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var authErr *services.AuthError
	switch {
	case errors.As(err, &authErr):
		return Unauthorized(c)
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, "Invalid Credentials"
	case errors.Is(err, services.ErrNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrForbidden):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrConflict):
		status, message = fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrInvalidInput):
		status, message = fiber.StatusUnprocessableEntity, err.Error()
	default:
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{"message": message})
}

// Unauthorized is the single answer for every rejected credential on a protected
// route.
func Unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Could not validate credentials",
	})
}
