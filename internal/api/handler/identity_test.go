package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/visage-id/visage/internal/api/middleware"
	"github.com/visage-id/visage/internal/domain"
	"github.com/visage-id/visage/internal/service"
)

// MockIdentityService is a mock implementation of IdentityService
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Register(ctx context.Context, input service.RegisterInput) (*domain.Identity, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityService) Get(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityService) List(ctx context.Context) ([]domain.Identity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Identity), args.Error(1)
}

func (m *MockIdentityService) Update(ctx context.Context, id uuid.UUID, input service.UpdateInput) (*domain.Identity, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// testLogger returns a logger that discards all output
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestApp builds a fiber app with the production error handler wired in.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(testLogger()),
	})
}

func testIdentity(id uuid.UUID, name string) *domain.Identity {
	return &domain.Identity{
		ID:        id,
		Name:      name,
		Role:      "Employee",
		Embedding: make(domain.Embedding, domain.EmbeddingDim),
		IsActive:  true,
		LastSeen:  time.Now(),
		CreatedAt: time.Now(),
	}
}

func TestIdentityHandler_Register(t *testing.T) {
	identityID := uuid.New()

	tests := []struct {
		name           string
		body           any
		setupMock      func(*MockIdentityService)
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name: "successful registration",
			body: RegisterRequest{
				Name:      "Alice",
				Role:      "Manager",
				Embedding: make([]float64, domain.EmbeddingDim),
			},
			setupMock: func(m *MockIdentityService) {
				m.On("Register", mock.Anything, mock.Anything).Return(testIdentity(identityID, "Alice"), nil)
			},
			expectedStatus: 201,
			checkResponse: func(t *testing.T, body []byte) {
				var resp IdentityResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, identityID.String(), resp.ID)
				assert.Equal(t, "Alice", resp.Name)
				assert.True(t, resp.IsActive)
			},
		},
		{
			name: "face already registered",
			body: RegisterRequest{
				Name:      "Bob",
				Embedding: make([]float64, domain.EmbeddingDim),
			},
			setupMock: func(m *MockIdentityService) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateFace.WithDetails(map[string]any{
					"existing_name": "Alice",
					"confidence":    93.2,
				}))
			},
			expectedStatus: 409,
			checkResponse: func(t *testing.T, body []byte) {
				var resp struct {
					Error struct {
						Code    string         `json:"code"`
						Details map[string]any `json:"details"`
					} `json:"error"`
				}
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "FACE_ALREADY_REGISTERED", resp.Error.Code)
				assert.Equal(t, "Alice", resp.Error.Details["existing_name"])
			},
		},
		{
			name: "name already taken",
			body: RegisterRequest{
				Name:      "Alice",
				Embedding: make([]float64, domain.EmbeddingDim),
			},
			setupMock: func(m *MockIdentityService) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrNameTaken)
			},
			expectedStatus: 409,
		},
		{
			name: "invalid embedding",
			body: RegisterRequest{
				Name:      "Alice",
				Embedding: make([]float64, 64),
			},
			setupMock: func(m *MockIdentityService) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidEmbedding)
			},
			expectedStatus: 422,
		},
		{
			name:           "malformed body",
			body:           "{not json",
			setupMock:      func(m *MockIdentityService) {},
			expectedStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockIdentityService{}
			tt.setupMock(mockService)

			handler := NewIdentityHandler(mockService, testLogger())
			app := newTestApp()
			app.Post("/v1/identities", handler.Register)

			var payload []byte
			if s, ok := tt.body.(string); ok {
				payload = []byte(s)
			} else {
				payload, _ = json.Marshal(tt.body)
			}

			req := httptest.NewRequest("POST", "/v1/identities", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				respBody, _ := io.ReadAll(resp.Body)
				tt.checkResponse(t, respBody)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestIdentityHandler_Get(t *testing.T) {
	identityID := uuid.New()

	tests := []struct {
		name           string
		path           string
		setupMock      func(*MockIdentityService)
		expectedStatus int
	}{
		{
			name: "found",
			path: "/v1/identities/" + identityID.String(),
			setupMock: func(m *MockIdentityService) {
				m.On("Get", mock.Anything, identityID).Return(testIdentity(identityID, "Alice"), nil)
			},
			expectedStatus: 200,
		},
		{
			name: "not found",
			path: "/v1/identities/" + uuid.NewString(),
			setupMock: func(m *MockIdentityService) {
				m.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrIdentityNotFound)
			},
			expectedStatus: 404,
		},
		{
			name:           "invalid uuid",
			path:           "/v1/identities/not-a-uuid",
			setupMock:      func(m *MockIdentityService) {},
			expectedStatus: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockIdentityService{}
			tt.setupMock(mockService)

			handler := NewIdentityHandler(mockService, testLogger())
			app := newTestApp()
			app.Get("/v1/identities/:id", handler.Get)

			req := httptest.NewRequest("GET", tt.path, nil)
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			mockService.AssertExpectations(t)
		})
	}
}

func TestIdentityHandler_List(t *testing.T) {
	mockService := &MockIdentityService{}
	mockService.On("List", mock.Anything).Return([]domain.Identity{
		*testIdentity(uuid.New(), "Alice"),
		*testIdentity(uuid.New(), "Bob"),
	}, nil)

	handler := NewIdentityHandler(mockService, testLogger())
	app := newTestApp()
	app.Get("/v1/identities", handler.List)

	req := httptest.NewRequest("GET", "/v1/identities", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out []IdentityResponse
	assert.NoError(t, json.Unmarshal(body, &out))
	assert.Len(t, out, 2)
	assert.Equal(t, "Alice", out[0].Name)

	mockService.AssertExpectations(t)
}

func TestIdentityHandler_Update(t *testing.T) {
	identityID := uuid.New()
	newRole := "Manager"

	tests := []struct {
		name           string
		body           UpdateRequest
		setupMock      func(*MockIdentityService)
		expectedStatus int
	}{
		{
			name: "role update",
			body: UpdateRequest{Role: &newRole},
			setupMock: func(m *MockIdentityService) {
				updated := testIdentity(identityID, "Alice")
				updated.Role = newRole
				m.On("Update", mock.Anything, identityID, mock.Anything).Return(updated, nil)
			},
			expectedStatus: 200,
		},
		{
			name:           "embedding change rejected",
			body:           UpdateRequest{Embedding: make([]float64, domain.EmbeddingDim)},
			setupMock:      func(m *MockIdentityService) {},
			expectedStatus: 422,
		},
		{
			name: "not found",
			body: UpdateRequest{Role: &newRole},
			setupMock: func(m *MockIdentityService) {
				m.On("Update", mock.Anything, identityID, mock.Anything).Return(nil, domain.ErrIdentityNotFound)
			},
			expectedStatus: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockIdentityService{}
			tt.setupMock(mockService)

			handler := NewIdentityHandler(mockService, testLogger())
			app := newTestApp()
			app.Patch("/v1/identities/:id", handler.Update)

			payload, _ := json.Marshal(tt.body)
			req := httptest.NewRequest("PATCH", "/v1/identities/"+identityID.String(), bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			mockService.AssertExpectations(t)
		})
	}
}

func TestIdentityHandler_Delete(t *testing.T) {
	identityID := uuid.New()

	tests := []struct {
		name           string
		setupMock      func(*MockIdentityService)
		expectedStatus int
	}{
		{
			name: "successful deletion",
			setupMock: func(m *MockIdentityService) {
				m.On("Delete", mock.Anything, identityID).Return(nil)
			},
			expectedStatus: 204,
		},
		{
			name: "not found",
			setupMock: func(m *MockIdentityService) {
				m.On("Delete", mock.Anything, identityID).Return(domain.ErrIdentityNotFound)
			},
			expectedStatus: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockIdentityService{}
			tt.setupMock(mockService)

			handler := NewIdentityHandler(mockService, testLogger())
			app := newTestApp()
			app.Delete("/v1/identities/:id", handler.Delete)

			req := httptest.NewRequest("DELETE", "/v1/identities/"+identityID.String(), nil)
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			mockService.AssertExpectations(t)
		})
	}
}
