package handlers

import (
	"blog/internal/models"
	"blog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// VoteHandler handles HTTP requests for votes.
type VoteHandler struct {
	service  *services.VoteService
	validate *validator.Validate
	log      *zap.Logger
}

// NewVoteHandler creates a new VoteHandler.
func NewVoteHandler(service *services.VoteService, validate *validator.Validate, log *zap.Logger) *VoteHandler {
	return &VoteHandler{
		service:  service,
		validate: validate,
		log:      log,
	}
}

// RegisterRoutes registers the vote routes. Voting always needs auth.
func (h *VoteHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/votes", auth, h.HandleVote)
}

// VoteRequest adds (dir 1) or removes (dir -1) the caller's vote on a post.
type VoteRequest struct {
	PostID uint `json:"post_id" validate:"required"`
	Dir    int  `json:"dir" validate:"oneof=-1 1"`
}

// HandleVote adds or removes the caller's vote.
func (h *VoteHandler) HandleVote(c *fiber.Ctx) error {
	var req VoteRequest
	if ok, err := parseBody(c, h.validate, h.log, &req); !ok {
		return err
	}

	if err := h.service.Vote(c.UserContext(), currentUserID(c), req.PostID, req.Dir); err != nil {
		return respondError(c, h.log, err)
	}

	message := "Vote created successfully"
	if req.Dir == models.VoteRemove {
		message = "Vote deleted successfully"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message})
}
