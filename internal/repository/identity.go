package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/visage-id/visage/internal/domain"
)

const identityColumns = "id, name, role, embedding, profile_image, is_active, last_seen, created_at"

type IdentityRepository struct {
	pool PgxPool
}

func NewIdentityRepository(pool PgxPool) *IdentityRepository {
	return &IdentityRepository{pool: pool}
}

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	query := `
		INSERT INTO identities (id, name, role, embedding, profile_image, is_active, last_seen, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING last_seen, created_at
	`

	if identity.ID == uuid.Nil {
		identity.ID = uuid.New()
	}
	if identity.Role == "" {
		identity.Role = domain.DefaultRole
	}

	err := r.pool.QueryRow(ctx, query,
		identity.ID,
		identity.Name,
		identity.Role,
		toVector(identity.Embedding),
		identity.ProfileImage,
		identity.IsActive,
	).Scan(&identity.LastSeen, &identity.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameTaken
		}
		return fmt.Errorf("create identity: %w", err)
	}

	return nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	query := fmt.Sprintf(`SELECT %s FROM identities WHERE id = $1`, identityColumns)

	identity, err := r.scanIdentity(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrIdentityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get identity by id: %w", err)
	}

	return identity, nil
}

// GetByName performs a case-insensitive lookup among active identities.
func (r *IdentityRepository) GetByName(ctx context.Context, name string) (*domain.Identity, error) {
	query := fmt.Sprintf(`SELECT %s FROM identities WHERE LOWER(name) = LOWER($1) AND is_active = true`, identityColumns)

	identity, err := r.scanIdentity(r.pool.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrIdentityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get identity by name: %w", err)
	}

	return identity, nil
}

// List returns every identity ordered by last activity, most recent first.
func (r *IdentityRepository) List(ctx context.Context) ([]domain.Identity, error) {
	query := fmt.Sprintf(`SELECT %s FROM identities ORDER BY last_seen DESC`, identityColumns)

	return r.queryIdentities(ctx, query)
}

// ListActive returns the candidate pool for matching. The ordering is stable
// (registration order) so that evaluator tie-breaks are deterministic across
// calls.
func (r *IdentityRepository) ListActive(ctx context.Context) ([]domain.Identity, error) {
	query := fmt.Sprintf(`SELECT %s FROM identities WHERE is_active = true ORDER BY created_at, id`, identityColumns)

	return r.queryIdentities(ctx, query)
}

// Update persists mutable profile fields. The embedding column is deliberately
// absent: stored embeddings are immutable.
func (r *IdentityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	query := `
		UPDATE identities
		SET name = $2, role = $3, profile_image = $4, is_active = $5
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		identity.ID,
		identity.Name,
		identity.Role,
		identity.ProfileImage,
		identity.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameTaken
		}
		return fmt.Errorf("update identity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}

	return nil
}

func (r *IdentityRepository) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE identities SET last_seen = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("update last seen: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}

	return nil
}

func (r *IdentityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM identities WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}

	return nil
}

func (r *IdentityRepository) queryIdentities(ctx context.Context, query string, args ...interface{}) ([]domain.Identity, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query identities: %w", err)
	}
	defer rows.Close()

	var identities []domain.Identity
	for rows.Next() {
		identity, err := r.scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan identity: %w", err)
		}
		identities = append(identities, *identity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate identities: %w", err)
	}

	return identities, nil
}

func (r *IdentityRepository) scanIdentity(row pgx.Row) (*domain.Identity, error) {
	var identity domain.Identity
	var embedding *pgvector.Vector

	err := row.Scan(
		&identity.ID,
		&identity.Name,
		&identity.Role,
		&embedding,
		&identity.ProfileImage,
		&identity.IsActive,
		&identity.LastSeen,
		&identity.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	identity.Embedding = fromVector(embedding)
	return &identity, nil
}
