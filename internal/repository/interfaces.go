package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/visage-id/visage/internal/domain"
)

// PgxPool is the subset of pgxpool.Pool the repositories use, compatible with
// pgxmock for tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// IdentityRepositoryInterface defines operations for identity data access
type IdentityRepositoryInterface interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
	GetByName(ctx context.Context, name string) (*domain.Identity, error)
	List(ctx context.Context) ([]domain.Identity, error)
	ListActive(ctx context.Context) ([]domain.Identity, error)
	Update(ctx context.Context, identity *domain.Identity) error
	UpdateLastSeen(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecognitionLogRepositoryInterface defines operations for the append-only
// recognition audit log
type RecognitionLogRepositoryInterface interface {
	Create(ctx context.Context, entry *domain.RecognitionLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.RecognitionLog, error)
	Stats(ctx context.Context) (*domain.RecognitionStats, error)
}
