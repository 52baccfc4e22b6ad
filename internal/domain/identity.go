package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity representa uma pessoa cadastrada no sistema
type Identity struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Embedding    Embedding `json:"-"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	IsActive     bool      `json:"is_active"`
	LastSeen     time.Time `json:"last_seen"`
	CreatedAt    time.Time `json:"created_at"`
}

// DefaultRole is assigned when registration omits a role.
const DefaultRole = "Employee"

// Recognition is the transient outcome of one authentication attempt. It is
// produced fresh per request and never cached; the identity set can change
// between calls.
type Recognition struct {
	Success    bool      `json:"success"`
	Identity   *Identity `json:"identity,omitempty"`
	Confidence float64   `json:"confidence"`
}

// DuplicateCheck is the outcome of a registration-time duplicate-face check.
type DuplicateCheck struct {
	DuplicateFound bool      `json:"duplicate_found"`
	Matched        *Identity `json:"matched,omitempty"`
	Confidence     float64   `json:"confidence"`
}

// RecognitionLog representa um registro de tentativa de reconhecimento (audit)
type RecognitionLog struct {
	ID         uuid.UUID  `json:"id"`
	IdentityID *uuid.UUID `json:"identity_id,omitempty"`
	Confidence float64    `json:"confidence"`
	Success    bool       `json:"success"`
	CreatedAt  time.Time  `json:"created_at"`
}

// RecognitionStats aggregates the recognition log for the dashboard.
type RecognitionStats struct {
	TotalScans  int     `json:"total_scans"`
	SuccessRate float64 `json:"success_rate"`
	ActiveToday int     `json:"active_today"`
}
