package match

import (
	"errors"
	"fmt"
	"math"
)

// Policy bundles the thresholds and weights governing one matching decision.
// Authentication and registration duplicate-checks use the same evaluator with
// independently configured policies.
type Policy struct {
	// DistanceThreshold is the maximum acceptable Euclidean distance.
	DistanceThreshold float64
	// SimilarityThreshold is the minimum acceptable cosine similarity.
	SimilarityThreshold float64
	// MinimumConfidence rejects a match whose blended confidence falls below
	// it, even when both per-metric thresholds passed. 0 disables the gate.
	MinimumConfidence float64
	// DistanceWeight and SimilarityWeight blend the two metric scores into
	// the confidence value. They must sum to 1.
	DistanceWeight   float64
	SimilarityWeight float64
	// MaxConfidence caps the reported confidence, keeping headroom below 100.
	MaxConfidence float64
}

// AuthenticationPolicy returns the lenient defaults used when recognizing a
// returning identity.
func AuthenticationPolicy() Policy {
	return Policy{
		DistanceThreshold:   0.6,
		SimilarityThreshold: 0.8,
		MinimumConfidence:   0,
		DistanceWeight:      0.3,
		SimilarityWeight:    0.7,
		MaxConfidence:       95,
	}
}

// RegistrationPolicy returns the strict defaults used for duplicate detection
// before persisting a new identity.
func RegistrationPolicy() Policy {
	return Policy{
		DistanceThreshold:   0.5,
		SimilarityThreshold: 0.9,
		MinimumConfidence:   85,
		DistanceWeight:      0.3,
		SimilarityWeight:    0.7,
		MaxConfidence:       95,
	}
}

const weightTolerance = 1e-9

func (p Policy) Validate() error {
	if p.DistanceThreshold <= 0 {
		return errors.New("distance threshold must be positive")
	}
	if p.SimilarityThreshold < -1 || p.SimilarityThreshold > 1 {
		return errors.New("similarity threshold must be within [-1, 1]")
	}
	if p.DistanceWeight < 0 || p.SimilarityWeight < 0 {
		return errors.New("blend weights must be non-negative")
	}
	if math.Abs(p.DistanceWeight+p.SimilarityWeight-1) > weightTolerance {
		return fmt.Errorf("blend weights must sum to 1, got %g", p.DistanceWeight+p.SimilarityWeight)
	}
	if p.MaxConfidence <= 0 || p.MaxConfidence > 100 {
		return errors.New("max confidence must be within (0, 100]")
	}
	if p.MinimumConfidence < 0 || p.MinimumConfidence > p.MaxConfidence {
		return errors.New("minimum confidence must be within [0, max confidence]")
	}
	return nil
}
