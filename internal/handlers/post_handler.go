package handlers

import (
	"blog/internal/models"
	"blog/internal/repositories"
	"blog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service  *services.PostService
	validate *validator.Validate
	log      *zap.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service *services.PostService, validate *validator.Validate, log *zap.Logger) *PostHandler {
	return &PostHandler{
		service:  service,
		validate: validate,
		log:      log,
	}
}

// RegisterRoutes registers the post routes. Reads are public; writes need auth.
func (h *PostHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	postRoutes := router.Group("/posts")
	postRoutes.Get("/", h.HandleGetPosts)
	postRoutes.Get("/:id", h.HandleGetPostByID)
	postRoutes.Post("/", auth, h.HandleCreatePost)
	postRoutes.Put("/:id", auth, h.HandleReplacePost)
	postRoutes.Patch("/:id", auth, h.HandleUpdatePost)
	postRoutes.Delete("/:id", auth, h.HandleDeletePost)
}

// PostRequest is the body of a create or full replace.
type PostRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	Content   string `json:"content" validate:"required,max=254"`
	Published *bool  `json:"published"`
}

func (r PostRequest) fields() services.PostFields {
	return services.PostFields{Title: r.Title, Content: r.Content, Published: r.Published}
}

// PatchPostRequest changes only the fields present in the body.
type PatchPostRequest struct {
	Title     *string `json:"title" validate:"omitnil,min=1,max=255"`
	Content   *string `json:"content" validate:"omitnil,min=1,max=254"`
	Published *bool   `json:"published"`
}

// HandleGetPosts lists posts with their vote counts.
func (h *PostHandler) HandleGetPosts(c *fiber.Ctx) error {
	q, err := parsePageQuery(c)
	if err != nil {
		return invalidRequest(c, err)
	}

	rows, err := h.service.List(c.UserContext(), repositories.PostQuery{
		Offset: q.Offset,
		Limit:  q.limit(),
		Search: q.Search,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	out := make([]models.PostVote, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Response())
	}
	return c.JSON(out)
}

// HandleGetPostByID returns one post with its vote count.
func (h *PostHandler) HandleGetPostByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidRequest(c, err)
	}

	row, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(row.Response())
}

// HandleCreatePost creates a post owned by the caller.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	var req PostRequest
	if ok, err := parseBody(c, h.validate, h.log, &req); !ok {
		return err
	}

	post, err := h.service.Create(c.UserContext(), currentUserID(c), req.fields())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post.Public(nil))
}

// HandleReplacePost overwrites a post owned by the caller.
func (h *PostHandler) HandleReplacePost(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidRequest(c, err)
	}
	var req PostRequest
	if ok, err := parseBody(c, h.validate, h.log, &req); !ok {
		return err
	}

	post, err := h.service.Replace(c.UserContext(), currentUserID(c), id, req.fields())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(post.Public(nil))
}

// HandleUpdatePost applies a partial update to a post owned by the caller.
func (h *PostHandler) HandleUpdatePost(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidRequest(c, err)
	}
	var req PatchPostRequest
	if ok, err := parseBody(c, h.validate, h.log, &req); !ok {
		return err
	}

	post, err := h.service.Update(c.UserContext(), currentUserID(c), id, services.PostPatch{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(post.Public(nil))
}

// HandleDeletePost deletes a post owned by the caller.
func (h *PostHandler) HandleDeletePost(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidRequest(c, err)
	}

	if err := h.service.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
