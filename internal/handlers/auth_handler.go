package handlers

import (
	"time"

	"blog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AccessTokenCookie is the cookie carrying the access token for browser clients.
const AccessTokenCookie = "access_token"

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService  *services.AuthService
	tokenTTL     time.Duration
	cookieSecure bool
	validate     *validator.Validate
	log          *zap.Logger
}

// NewAuthHandler creates a new AuthHandler. tokenTTL sets the cookie expiry and
// should match the token service's.
func NewAuthHandler(authService *services.AuthService, tokenTTL time.Duration, cookieSecure bool, validate *validator.Validate, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenTTL:     tokenTTL,
		cookieSecure: cookieSecure,
		validate:     validate,
		log:          log,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/login", h.HandleLogin)
}

// LoginRequest represents the login form. Username carries the email address.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// HandleLogin checks the credentials and issues an access token, both in the body
// and as an HTTP-only cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := parseBody(c, h.validate, h.log, &req); !ok {
		return err
	}

	token, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		h.log.Info("login failed", zap.String("username", req.Username), zap.Error(err))
		return respondError(c, h.log, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		Secure:   h.cookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}
