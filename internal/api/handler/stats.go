package handler

import (
	"context"
	"log/slog"
	"math"

	"github.com/gofiber/fiber/v2"

	"github.com/visage-id/visage/internal/domain"
)

// StatsService is the service surface the dashboard endpoints use.
type StatsService interface {
	Stats(ctx context.Context) (*domain.RecognitionStats, error)
	RecentLogs(ctx context.Context, limit int) ([]domain.RecognitionLog, error)
}

// StatsHandler serves recognition statistics and the recent audit trail
type StatsHandler struct {
	service StatsService
	logger  *slog.Logger
}

func NewStatsHandler(service StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger,
	}
}

// StatsResponse is the dashboard summary.
type StatsResponse struct {
	TotalScans  int     `json:"total_scans"`
	SuccessRate float64 `json:"success_rate"`
	ActiveToday int     `json:"active_today"`
}

// LogEntryResponse is one recognition attempt in the audit trail.
type LogEntryResponse struct {
	ID         string  `json:"id"`
	IdentityID *string `json:"identity_id"`
	Confidence float64 `json:"confidence"`
	Success    bool    `json:"success"`
	CreatedAt  string  `json:"created_at"`
}

// Stats GET /v1/stats
func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(StatsResponse{
		TotalScans:  stats.TotalScans,
		SuccessRate: math.Round(stats.SuccessRate*10) / 10,
		ActiveToday: stats.ActiveToday,
	})
}

// Recognitions GET /v1/recognitions - recent recognition attempts
func (h *StatsHandler) Recognitions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	entries, err := h.service.RecentLogs(c.Context(), limit)
	if err != nil {
		return err
	}

	out := make([]LogEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = LogEntryResponse{
			ID:         entry.ID.String(),
			Confidence: entry.Confidence,
			Success:    entry.Success,
			CreatedAt:  entry.CreatedAt.UTC().Format(timeLayout),
		}
		if entry.IdentityID != nil {
			id := entry.IdentityID.String()
			out[i].IdentityID = &id
		}
	}
	return c.JSON(out)
}
