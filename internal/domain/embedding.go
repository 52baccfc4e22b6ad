package domain

// EmbeddingDim is the dimensionality of face embeddings produced by the
// client-side detection model.
const EmbeddingDim = 128

// Embedding is a fixed-length face descriptor. Embeddings are produced once at
// registration time and never recomputed.
type Embedding []float64

// Validate checks the embedding against the fixed dimensionality. A query
// embedding that fails validation is a caller bug and must be rejected before
// any matching is attempted.
func (e Embedding) Validate() error {
	if e == nil {
		return ErrInvalidEmbedding.WithError(errInvalidEmbeddingNil)
	}
	if len(e) != EmbeddingDim {
		return ErrInvalidEmbedding.WithError(errInvalidEmbeddingDim)
	}
	return nil
}
