package domain

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	StatusCode int            `json:"-"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code, so errors derived with WithError or
// WithDetails still compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		Details:    e.Details,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// WithDetails attaches structured context that is safe to return to the client.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		Details:    details,
		StatusCode: e.StatusCode,
		Err:        e.Err,
	}
}

var (
	errInvalidEmbeddingNil = errors.New("embedding is required")
	errInvalidEmbeddingDim = fmt.Errorf("embedding must have exactly %d dimensions", EmbeddingDim)
)

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	ErrIdentityNotFound = &AppError{
		Code:       "IDENTITY_NOT_FOUND",
		Message:    "Identity not found",
		StatusCode: 404,
	}

	ErrNameTaken = &AppError{
		Code:       "NAME_TAKEN",
		Message:    "An identity with this name already exists",
		StatusCode: 409,
	}

	ErrDuplicateFace = &AppError{
		Code:       "FACE_ALREADY_REGISTERED",
		Message:    "This face is already registered in the system",
		StatusCode: 409,
	}

	ErrInvalidEmbedding = &AppError{
		Code:       "INVALID_EMBEDDING",
		Message:    "Face embedding must be an array of 128 numbers",
		StatusCode: 422,
	}

	ErrEmbeddingImmutable = &AppError{
		Code:       "EMBEDDING_IMMUTABLE",
		Message:    "Stored face embeddings cannot be modified",
		StatusCode: 422,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}
)
