package match

import (
	"github.com/google/uuid"
)

// Candidate pairs a stored identity with its embedding.
type Candidate struct {
	ID        uuid.UUID
	Embedding []float64
}

// Result is the outcome of evaluating one query against a candidate pool.
// It is self-contained; concurrent evaluations share no state.
type Result struct {
	Matched    bool
	IdentityID uuid.UUID
	Confidence float64
	// Distance and Similarity are the raw metrics of the selected candidate,
	// kept for audit logging.
	Distance   float64
	Similarity float64
	// Evaluated counts candidates that were compared; Skipped counts stored
	// embeddings with the wrong length, which are ignored rather than failing
	// the whole attempt.
	Evaluated int
	Skipped   int
}

// FindBestMatch evaluates a query embedding against every candidate and
// selects the single best match under the given policy.
//
// A candidate is eligible only when its distance is below the distance
// threshold AND its similarity is above the similarity threshold. Neither
// metric alone is trusted: Euclidean distance is sensitive to magnitude drift
// while cosine similarity is blind to offset. Among eligible candidates the
// smallest distance wins; ties go to the earliest candidate in input order.
//
// The caller must validate the query embedding beforehand. An empty pool or a
// pool with no eligible candidate is a normal no-match, not an error.
func FindBestMatch(query []float64, candidates []Candidate, policy Policy) Result {
	result := Result{}

	var best *Candidate
	bestDistance := policy.DistanceThreshold
	bestSimilarity := 0.0

	for i := range candidates {
		c := &candidates[i]
		if len(c.Embedding) != len(query) {
			result.Skipped++
			continue
		}
		result.Evaluated++

		distance := EuclideanDistance(query, c.Embedding)
		similarity := CosineSimilarity(query, c.Embedding)

		if distance >= policy.DistanceThreshold || similarity <= policy.SimilarityThreshold {
			continue
		}
		// Strict inequality keeps the first occurrence on equal distances.
		if best == nil || distance < bestDistance {
			best = c
			bestDistance = distance
			bestSimilarity = similarity
		}
	}

	if best == nil {
		return result
	}

	confidence := blendConfidence(bestDistance, bestSimilarity, policy)
	if policy.MinimumConfidence > 0 && confidence < policy.MinimumConfidence {
		// Safety net: both raw thresholds passed but the blended score is
		// still too weak to act on.
		return result
	}

	result.Matched = true
	result.IdentityID = best.ID
	result.Confidence = confidence
	result.Distance = bestDistance
	result.Similarity = bestSimilarity
	return result
}

// blendConfidence converts the raw metrics into a bounded score. The distance
// score decays linearly toward the threshold; the similarity score is the
// similarity on a 0-100 scale. Similarity carries the larger weight as the
// more reliable signal.
func blendConfidence(distance, similarity float64, policy Policy) float64 {
	distanceScore := (1 - distance/policy.DistanceThreshold) * 100
	if distanceScore < 0 {
		distanceScore = 0
	}
	similarityScore := similarity * 100

	confidence := distanceScore*policy.DistanceWeight + similarityScore*policy.SimilarityWeight
	if confidence < 0 {
		confidence = 0
	}
	if confidence > policy.MaxConfidence {
		confidence = policy.MaxConfidence
	}
	return confidence
}
