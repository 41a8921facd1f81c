package handlers

import (
	"blog/internal/models"
	"blog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
	log      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, validate *validator.Validate, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validate,
		log:      log,
	}
}

// RegisterRoutes registers the user routes. Registration is public; reads need auth.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Get("/", auth, h.HandleGetUsers)
	userRoutes.Get("/:id", auth, h.HandleGetUserByID)
}

// CreateUserRequest is the registration body.
type CreateUserRequest struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber *string `json:"phone_number" validate:"omitnil,max=32"`
}

// HandleCreateUser registers a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if ok, err := parseBody(c, h.validate, h.log, &req); !ok {
		return err
	}

	user, err := h.service.Register(c.UserContext(), req.Email, req.Password, req.PhoneNumber)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

// HandleGetUsers returns a page of users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	q, err := parsePageQuery(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	users, err := h.service.List(c.UserContext(), q.Offset, q.limit())
	if err != nil {
		return respondError(c, h.log, err)
	}

	out := make([]models.UserPublic, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return c.JSON(out)
}

// HandleGetUserByID returns the caller's own user record.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidRequest(c, err)
	}

	user, err := h.service.Get(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user.Public())
}
