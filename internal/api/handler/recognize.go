package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/visage-id/visage/internal/domain"
)

// Recognizer is the service surface the recognition endpoint uses.
type Recognizer interface {
	Recognize(ctx context.Context, query domain.Embedding) (*domain.Recognition, error)
}

// RecognizeHandler handles authentication attempts
type RecognizeHandler struct {
	service Recognizer
	logger  *slog.Logger
}

func NewRecognizeHandler(service Recognizer, logger *slog.Logger) *RecognizeHandler {
	return &RecognizeHandler{
		service: service,
		logger:  logger,
	}
}

// RecognizeRequest is the body for POST /v1/recognize.
type RecognizeRequest struct {
	Embedding []float64 `json:"embedding"`
}

// RecognizeResponse reports the match decision. The identity is null when no
// confident match was found; failures are reported generically.
type RecognizeResponse struct {
	Success    bool              `json:"success"`
	Identity   *IdentityResponse `json:"identity"`
	Confidence float64           `json:"confidence"`
}

// Recognize POST /v1/recognize - match a face embedding against all active identities
func (h *RecognizeHandler) Recognize(c *fiber.Ctx) error {
	var req RecognizeRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	recognition, err := h.service.Recognize(c.Context(), req.Embedding)
	if err != nil {
		return err
	}

	resp := RecognizeResponse{
		Success:    recognition.Success,
		Confidence: recognition.Confidence,
	}
	if recognition.Identity != nil {
		identity := toIdentityResponse(recognition.Identity)
		resp.Identity = &identity
	}

	return c.JSON(resp)
}
