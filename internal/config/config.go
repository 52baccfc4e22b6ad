package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/visage-id/visage/internal/match"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Authentication matching tier (lenient, favors usability)
	AuthDistanceThreshold   float64 `envconfig:"AUTH_DISTANCE_THRESHOLD" default:"0.6"`
	AuthSimilarityThreshold float64 `envconfig:"AUTH_SIMILARITY_THRESHOLD" default:"0.8"`
	AuthMinimumConfidence   float64 `envconfig:"AUTH_MINIMUM_CONFIDENCE" default:"0"`

	// Registration duplicate-check tier (strict, favors precision)
	RegistrationDistanceThreshold   float64 `envconfig:"REGISTRATION_DISTANCE_THRESHOLD" default:"0.5"`
	RegistrationSimilarityThreshold float64 `envconfig:"REGISTRATION_SIMILARITY_THRESHOLD" default:"0.9"`
	RegistrationMinimumConfidence   float64 `envconfig:"REGISTRATION_MINIMUM_CONFIDENCE" default:"85"`

	// Shared confidence blend
	DistanceWeight   float64 `envconfig:"MATCH_DISTANCE_WEIGHT" default:"0.3"`
	SimilarityWeight float64 `envconfig:"MATCH_SIMILARITY_WEIGHT" default:"0.7"`
	MaxConfidence    float64 `envconfig:"MATCH_MAX_CONFIDENCE" default:"95"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.AuthPolicy().Validate(); err != nil {
		return nil, fmt.Errorf("auth policy: %w", err)
	}
	if err := cfg.RegistrationPolicy().Validate(); err != nil {
		return nil, fmt.Errorf("registration policy: %w", err)
	}

	return &cfg, nil
}

// AuthPolicy assembles the matching policy for the recognition endpoint.
func (c *Config) AuthPolicy() match.Policy {
	return match.Policy{
		DistanceThreshold:   c.AuthDistanceThreshold,
		SimilarityThreshold: c.AuthSimilarityThreshold,
		MinimumConfidence:   c.AuthMinimumConfidence,
		DistanceWeight:      c.DistanceWeight,
		SimilarityWeight:    c.SimilarityWeight,
		MaxConfidence:       c.MaxConfidence,
	}
}

// RegistrationPolicy assembles the matching policy for duplicate detection.
func (c *Config) RegistrationPolicy() match.Policy {
	return match.Policy{
		DistanceThreshold:   c.RegistrationDistanceThreshold,
		SimilarityThreshold: c.RegistrationSimilarityThreshold,
		MinimumConfidence:   c.RegistrationMinimumConfidence,
		DistanceWeight:      c.DistanceWeight,
		SimilarityWeight:    c.SimilarityWeight,
		MaxConfidence:       c.MaxConfidence,
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
