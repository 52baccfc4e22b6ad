package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/visage-id/visage/internal/domain"
)

type RecognitionLogRepository struct {
	pool PgxPool
}

func NewRecognitionLogRepository(pool PgxPool) *RecognitionLogRepository {
	return &RecognitionLogRepository{pool: pool}
}

// Create appends one recognition attempt to the audit log.
func (r *RecognitionLogRepository) Create(ctx context.Context, entry *domain.RecognitionLog) error {
	query := `
		INSERT INTO recognition_logs (id, identity_id, confidence, success, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.IdentityID,
		entry.Confidence,
		entry.Success,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("create recognition log: %w", err)
	}

	return nil
}

func (r *RecognitionLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.RecognitionLog, error) {
	query := `
		SELECT id, identity_id, confidence, success, created_at
		FROM recognition_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recognition logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.RecognitionLog
	for rows.Next() {
		var entry domain.RecognitionLog
		if err := rows.Scan(&entry.ID, &entry.IdentityID, &entry.Confidence, &entry.Success, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recognition log: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recognition logs: %w", err)
	}

	return entries, nil
}

// Stats aggregates the log for the dashboard: total attempts, success rate
// and identities seen since midnight.
func (r *RecognitionLogRepository) Stats(ctx context.Context) (*domain.RecognitionStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM recognition_logs),
			(SELECT COUNT(*) FROM recognition_logs WHERE success),
			(SELECT COUNT(*) FROM identities WHERE last_seen >= date_trunc('day', NOW()))
	`

	var total, successful, activeToday int
	if err := r.pool.QueryRow(ctx, query).Scan(&total, &successful, &activeToday); err != nil {
		return nil, fmt.Errorf("recognition stats: %w", err)
	}

	stats := &domain.RecognitionStats{
		TotalScans:  total,
		ActiveToday: activeToday,
	}
	if total > 0 {
		stats.SuccessRate = float64(successful) / float64(total) * 100
	}

	return stats, nil
}
