package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/visage-id/visage/internal/domain"
	"github.com/visage-id/visage/internal/service"
)

// IdentityService is the service surface the identity endpoints use.
type IdentityService interface {
	Register(ctx context.Context, input service.RegisterInput) (*domain.Identity, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
	List(ctx context.Context) ([]domain.Identity, error)
	Update(ctx context.Context, id uuid.UUID, input service.UpdateInput) (*domain.Identity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// IdentityHandler handles identity CRUD requests
type IdentityHandler struct {
	service IdentityService
	logger  *slog.Logger
}

func NewIdentityHandler(service IdentityService, logger *slog.Logger) *IdentityHandler {
	return &IdentityHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRequest is the body for POST /v1/identities.
type RegisterRequest struct {
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Embedding    []float64 `json:"embedding"`
	ProfileImage *string   `json:"profile_image"`
}

// UpdateRequest is the body for PATCH /v1/identities/:id. Absent fields are
// left unchanged; the embedding cannot be changed at all.
type UpdateRequest struct {
	Name         *string `json:"name"`
	Role         *string `json:"role"`
	ProfileImage *string `json:"profile_image"`
	IsActive     *bool   `json:"is_active"`
	Embedding    []float64 `json:"embedding"`
}

// IdentityResponse is the wire shape for a single identity.
type IdentityResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	ProfileImage *string `json:"profile_image,omitempty"`
	IsActive     bool    `json:"is_active"`
	LastSeen     string  `json:"last_seen"`
	CreatedAt    string  `json:"created_at"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func toIdentityResponse(identity *domain.Identity) IdentityResponse {
	return IdentityResponse{
		ID:           identity.ID.String(),
		Name:         identity.Name,
		Role:         identity.Role,
		ProfileImage: identity.ProfileImage,
		IsActive:     identity.IsActive,
		LastSeen:     identity.LastSeen.UTC().Format(timeLayout),
		CreatedAt:    identity.CreatedAt.UTC().Format(timeLayout),
	}
}

// Register POST /v1/identities - register a new identity
func (h *IdentityHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	identity, err := h.service.Register(c.Context(), service.RegisterInput{
		Name:         req.Name,
		Role:         req.Role,
		Embedding:    req.Embedding,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toIdentityResponse(identity))
}

// List GET /v1/identities - list all identities
func (h *IdentityHandler) List(c *fiber.Ctx) error {
	identities, err := h.service.List(c.Context())
	if err != nil {
		return err
	}

	out := make([]IdentityResponse, len(identities))
	for i := range identities {
		out[i] = toIdentityResponse(&identities[i])
	}
	return c.JSON(out)
}

// Get GET /v1/identities/:id
func (h *IdentityHandler) Get(c *fiber.Ctx) error {
	id, err := parseIdentityID(c)
	if err != nil {
		return err
	}

	identity, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(toIdentityResponse(identity))
}

// Update PATCH /v1/identities/:id - update profile fields
func (h *IdentityHandler) Update(c *fiber.Ctx) error {
	id, err := parseIdentityID(c)
	if err != nil {
		return err
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	if len(req.Embedding) > 0 {
		return domain.ErrEmbeddingImmutable
	}

	identity, err := h.service.Update(c.Context(), id, service.UpdateInput{
		Name:         req.Name,
		Role:         req.Role,
		ProfileImage: req.ProfileImage,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return err
	}

	return c.JSON(toIdentityResponse(identity))
}

// Delete DELETE /v1/identities/:id
func (h *IdentityHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIdentityID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseIdentityID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, domain.ErrValidationFailed.WithError(err)
	}
	return id, nil
}
