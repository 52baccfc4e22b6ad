package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// IdentityData represents a registered identity
type IdentityData struct {
	ID           string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name         string `json:"name" example:"Jane Smith"`
	Role         string `json:"role" example:"Employee"`
	ProfileImage string `json:"profile_image,omitempty" example:"data:image/jpeg;base64,..."`
	IsActive     bool   `json:"is_active" example:"true"`
	LastSeen     string `json:"last_seen" example:"2024-01-01T00:00:00Z"`
	CreatedAt    string `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// RegisterIdentityRequest is the payload for registering an identity
type RegisterIdentityRequest struct {
	Name         string    `json:"name" example:"Jane Smith"`
	Role         string    `json:"role" example:"Employee"`
	Embedding    []float64 `json:"embedding"`
	ProfileImage string    `json:"profile_image,omitempty"`
}

// RecognizeRequest is the payload for a recognition attempt
type RecognizeRequest struct {
	Embedding []float64 `json:"embedding"`
}

// RecognizeData reports the recognition decision
type RecognizeData struct {
	Success    bool          `json:"success" example:"true"`
	Identity   *IdentityData `json:"identity"`
	Confidence float64       `json:"confidence" example:"91.4"`
}

// StatsData aggregates the recognition log
type StatsData struct {
	TotalScans  int     `json:"total_scans" example:"1500"`
	SuccessRate float64 `json:"success_rate" example:"87.5"`
	ActiveToday int     `json:"active_today" example:"42"`
}

// RecognitionLogData is one entry of the audit trail
type RecognitionLogData struct {
	ID         string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	IdentityID *string `json:"identity_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	Confidence float64 `json:"confidence" example:"91.4"`
	Success    bool    `json:"success" example:"true"`
	CreatedAt  string  `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// EmptyResponse represents no content response (204)
type EmptyResponse struct{}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Visage Face Authentication API",
		Version:     "v0.1.0",
		Description: "Face registration and recognition backend: stores 128-d face embeddings and matches incoming embeddings against registered identities",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/identities - Register Identity
		endpoint.New(
			endpoint.POST,
			"/identities",
			endpoint.WithTags("Identities"),
			endpoint.WithSummary("Register a new identity"),
			endpoint.WithDescription("Registers a name plus face embedding. Rejects duplicate names and faces already registered under another identity."),
			endpoint.WithBody(RegisterIdentityRequest{}),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(IdentityData{}, "201", "Identity registered successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "NAME_TAKEN", Message: "An identity with this name already exists"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "FACE_ALREADY_REGISTERED", Message: "This face is already registered in the system"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "INVALID_EMBEDDING", Message: "Face embedding must be an array of 128 numbers"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/identities - List Identities
		endpoint.New(
			endpoint.GET,
			"/identities",
			endpoint.WithTags("Identities"),
			endpoint.WithSummary("List all identities"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New([]IdentityData{}, "200", "All registered identities"),
			}),
		),

		// GET /v1/identities/{id} - Get Identity
		endpoint.New(
			endpoint.GET,
			"/identities/{id}",
			endpoint.WithTags("Identities"),
			endpoint.WithSummary("Get an identity by id"),
			endpoint.WithParams(parameter.StrParam("id", parameter.Path, parameter.WithDescription("Identity id (UUID)"))),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(IdentityData{}, "200", "Identity"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "IDENTITY_NOT_FOUND", Message: "Identity not found"}, "404", "Not Found"),
			}),
		),

		// PATCH /v1/identities/{id} - Update Identity
		endpoint.New(
			endpoint.PATCH,
			"/identities/{id}",
			endpoint.WithTags("Identities"),
			endpoint.WithSummary("Update identity profile fields"),
			endpoint.WithDescription("Updates name, role, profile image or active flag. Stored embeddings are immutable."),
			endpoint.WithParams(parameter.StrParam("id", parameter.Path, parameter.WithDescription("Identity id (UUID)"))),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(IdentityData{}, "200", "Updated identity"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "IDENTITY_NOT_FOUND", Message: "Identity not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "EMBEDDING_IMMUTABLE", Message: "Stored face embeddings cannot be modified"}, "422", "Unprocessable Entity"),
			}),
		),

		// DELETE /v1/identities/{id} - Delete Identity
		endpoint.New(
			endpoint.DELETE,
			"/identities/{id}",
			endpoint.WithTags("Identities"),
			endpoint.WithSummary("Delete an identity"),
			endpoint.WithParams(parameter.StrParam("id", parameter.Path, parameter.WithDescription("Identity id (UUID)"))),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Identity deleted"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "IDENTITY_NOT_FOUND", Message: "Identity not found"}, "404", "Not Found"),
			}),
		),

		// POST /v1/recognize - Recognize Face
		endpoint.New(
			endpoint.POST,
			"/recognize",
			endpoint.WithTags("Recognition"),
			endpoint.WithSummary("Match an embedding against all active identities"),
			endpoint.WithDescription("Evaluates the query embedding under the authentication policy. A no-match is a normal outcome with success=false."),
			endpoint.WithBody(RecognizeRequest{}),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RecognizeData{}, "200", "Recognition decision"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_EMBEDDING", Message: "Face embedding must be an array of 128 numbers"}, "422", "Unprocessable Entity"),
			}),
		),

		// GET /v1/stats - Recognition Stats
		endpoint.New(
			endpoint.GET,
			"/stats",
			endpoint.WithTags("Recognition"),
			endpoint.WithSummary("Recognition statistics"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(StatsData{}, "200", "Aggregated stats"),
			}),
		),

		// GET /v1/recognitions - Recent Attempts
		endpoint.New(
			endpoint.GET,
			"/recognitions",
			endpoint.WithTags("Recognition"),
			endpoint.WithSummary("Recent recognition attempts"),
			endpoint.WithParams(parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Maximum number of entries (1-100, default: 50)"))),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New([]RecognitionLogData{}, "200", "Audit trail, newest first"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)
	return sw
}
