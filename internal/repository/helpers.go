package repository

import (
	"strings"

	"github.com/pgvector/pgvector-go"

	"github.com/visage-id/visage/internal/domain"
)

// isUniqueViolation checks if the error is a unique constraint violation
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "23505") ||
		strings.Contains(errMsg, "unique") ||
		strings.Contains(errMsg, "duplicate key")
}

// toVector converts a domain embedding to the pgvector wire type.
func toVector(embedding domain.Embedding) *pgvector.Vector {
	if len(embedding) == 0 {
		return nil
	}
	floats := make([]float32, len(embedding))
	for i, v := range embedding {
		floats[i] = float32(v)
	}
	vec := pgvector.NewVector(floats)
	return &vec
}

// fromVector converts a scanned pgvector value back to a domain embedding.
func fromVector(vec *pgvector.Vector) domain.Embedding {
	if vec == nil || vec.Slice() == nil {
		return nil
	}
	embedding := make(domain.Embedding, len(vec.Slice()))
	for i, v := range vec.Slice() {
		embedding[i] = float64(v)
	}
	return embedding
}
