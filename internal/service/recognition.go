package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/visage-id/visage/internal/domain"
	"github.com/visage-id/visage/internal/match"
	"github.com/visage-id/visage/internal/repository"
)

// RegisterInput carries the fields accepted at registration time.
type RegisterInput struct {
	Name         string
	Role         string
	Embedding    domain.Embedding
	ProfileImage *string
}

// UpdateInput carries the mutable profile fields. Embeddings are immutable
// once stored and cannot be updated.
type UpdateInput struct {
	Name         *string
	Role         *string
	ProfileImage *string
	IsActive     *bool
}

// RecognitionService implements recognition and identity management on top of
// the matching evaluator. Both the authentication and the duplicate-check
// paths go through the same evaluator with independently configured policies.
type RecognitionService struct {
	identities repository.IdentityRepositoryInterface
	logs       repository.RecognitionLogRepositoryInterface
	authPolicy match.Policy
	regPolicy  match.Policy
	logger     *slog.Logger

	// registerMu serializes the duplicate-check-then-insert section. Two
	// concurrent registrations of similar faces could otherwise both pass
	// the check against a pre-insert snapshot.
	registerMu sync.Mutex
}

func NewRecognitionService(
	identities repository.IdentityRepositoryInterface,
	logs repository.RecognitionLogRepositoryInterface,
	authPolicy match.Policy,
	regPolicy match.Policy,
	logger *slog.Logger,
) *RecognitionService {
	return &RecognitionService{
		identities: identities,
		logs:       logs,
		authPolicy: authPolicy,
		regPolicy:  regPolicy,
		logger:     logger,
	}
}

// Recognize evaluates a query embedding against every active identity. A
// no-match is a normal outcome, not an error. On a match the identity's
// last-seen timestamp is refreshed; every attempt is appended to the
// recognition log.
func (s *RecognitionService) Recognize(ctx context.Context, query domain.Embedding) (*domain.Recognition, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pool, err := s.identities.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("recognize: list candidates: %w", err)
	}

	result := match.FindBestMatch(query, candidates(pool), s.authPolicy)
	s.warnSkipped(result)

	recognition := &domain.Recognition{
		Success:    result.Matched,
		Confidence: result.Confidence,
	}

	var identityID *uuid.UUID
	if result.Matched {
		matched := findIdentity(pool, result.IdentityID)
		if matched == nil {
			return nil, fmt.Errorf("recognize: matched identity %s missing from pool", result.IdentityID)
		}
		recognition.Identity = matched
		identityID = &matched.ID

		if err := s.identities.UpdateLastSeen(ctx, matched.ID); err != nil {
			s.logger.Warn("failed to update last seen",
				slog.String("identity_id", matched.ID.String()),
				slog.Any("error", err),
			)
		}
	}

	// Audit log - error is intentionally not returned; the recognition
	// outcome was already determined.
	if err := s.logs.Create(ctx, &domain.RecognitionLog{
		IdentityID: identityID,
		Confidence: result.Confidence,
		Success:    result.Matched,
	}); err != nil {
		s.logger.Warn("failed to append recognition log", slog.Any("error", err))
	}

	return recognition, nil
}

// CheckDuplicate evaluates a query embedding against stored identities under
// the strict registration policy. excludeID removes the caller's own record
// from the pool, for re-checks of an existing identity.
func (s *RecognitionService) CheckDuplicate(ctx context.Context, query domain.Embedding, excludeID uuid.UUID) (*domain.DuplicateCheck, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pool, err := s.identities.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: list candidates: %w", err)
	}

	if excludeID != uuid.Nil {
		filtered := pool[:0]
		for _, identity := range pool {
			if identity.ID != excludeID {
				filtered = append(filtered, identity)
			}
		}
		pool = filtered
	}

	result := match.FindBestMatch(query, candidates(pool), s.regPolicy)
	s.warnSkipped(result)

	check := &domain.DuplicateCheck{
		DuplicateFound: result.Matched,
		Confidence:     result.Confidence,
	}
	if result.Matched {
		check.Matched = findIdentity(pool, result.IdentityID)
	}

	return check, nil
}

// Register creates a new identity after checking that neither the name nor
// the face is already registered. The check-then-insert section is serialized;
// the unique index on the name column remains the second line of defense.
func (s *RecognitionService) Register(ctx context.Context, input RegisterInput) (*domain.Identity, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("name is required"))
	}
	if err := input.Embedding.Validate(); err != nil {
		return nil, err
	}

	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	if _, err := s.identities.GetByName(ctx, name); err == nil {
		return nil, domain.ErrNameTaken
	} else if !errors.Is(err, domain.ErrIdentityNotFound) {
		return nil, fmt.Errorf("register: check name: %w", err)
	}

	check, err := s.CheckDuplicate(ctx, input.Embedding, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if check.DuplicateFound {
		// The conflicting name is surfaced deliberately so the operator can
		// resolve the collision.
		return nil, domain.ErrDuplicateFace.WithDetails(map[string]any{
			"existing_name": check.Matched.Name,
			"confidence":    check.Confidence,
		})
	}

	identity := &domain.Identity{
		Name:         name,
		Role:         input.Role,
		Embedding:    input.Embedding,
		ProfileImage: input.ProfileImage,
		IsActive:     true,
	}

	if err := s.identities.Create(ctx, identity); err != nil {
		return nil, err
	}

	return identity, nil
}

func (s *RecognitionService) Get(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	return s.identities.GetByID(ctx, id)
}

func (s *RecognitionService) List(ctx context.Context) ([]domain.Identity, error) {
	return s.identities.List(ctx)
}

// Update applies profile changes. A rename re-checks name uniqueness among
// active identities.
func (s *RecognitionService) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Identity, error) {
	identity, err := s.identities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.ErrValidationFailed.WithError(errors.New("name must not be empty"))
		}
		if !strings.EqualFold(name, identity.Name) {
			existing, err := s.identities.GetByName(ctx, name)
			if err == nil && existing.ID != id {
				return nil, domain.ErrNameTaken
			}
			if err != nil && !errors.Is(err, domain.ErrIdentityNotFound) {
				return nil, fmt.Errorf("update: check name: %w", err)
			}
		}
		identity.Name = name
	}
	if input.Role != nil {
		identity.Role = *input.Role
	}
	if input.ProfileImage != nil {
		identity.ProfileImage = input.ProfileImage
	}
	if input.IsActive != nil {
		identity.IsActive = *input.IsActive
	}

	if err := s.identities.Update(ctx, identity); err != nil {
		return nil, err
	}

	return identity, nil
}

func (s *RecognitionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.identities.Delete(ctx, id)
}

func (s *RecognitionService) Stats(ctx context.Context) (*domain.RecognitionStats, error) {
	return s.logs.Stats(ctx)
}

func (s *RecognitionService) RecentLogs(ctx context.Context, limit int) ([]domain.RecognitionLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.logs.ListRecent(ctx, limit)
}

// warnSkipped reports stored embeddings that could not be compared. One bad
// record must not abort an attempt, but it is a data-quality problem worth
// seeing in the logs.
func (s *RecognitionService) warnSkipped(result match.Result) {
	if result.Skipped > 0 {
		s.logger.Warn("skipped incomparable stored embeddings",
			slog.Int("skipped", result.Skipped),
			slog.Int("evaluated", result.Evaluated),
		)
	}
}

func candidates(pool []domain.Identity) []match.Candidate {
	out := make([]match.Candidate, len(pool))
	for i, identity := range pool {
		out[i] = match.Candidate{ID: identity.ID, Embedding: identity.Embedding}
	}
	return out
}

func findIdentity(pool []domain.Identity, id uuid.UUID) *domain.Identity {
	for i := range pool {
		if pool[i].ID == id {
			return &pool[i]
		}
	}
	return nil
}
