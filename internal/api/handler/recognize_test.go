package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/visage-id/visage/internal/domain"
)

// MockRecognizer is a mock implementation of Recognizer
type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) Recognize(ctx context.Context, query domain.Embedding) (*domain.Recognition, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recognition), args.Error(1)
}

func TestRecognizeHandler_Recognize(t *testing.T) {
	identityID := uuid.New()

	tests := []struct {
		name           string
		body           any
		setupMock      func(*MockRecognizer)
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name: "successful match",
			body: RecognizeRequest{Embedding: make([]float64, domain.EmbeddingDim)},
			setupMock: func(m *MockRecognizer) {
				m.On("Recognize", mock.Anything, mock.Anything).Return(&domain.Recognition{
					Success:    true,
					Identity:   testIdentity(identityID, "Alice"),
					Confidence: 91.3,
				}, nil)
			},
			expectedStatus: 200,
			checkResponse: func(t *testing.T, body []byte) {
				var resp RecognizeResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.True(t, resp.Success)
				assert.Equal(t, 91.3, resp.Confidence)
				assert.NotNil(t, resp.Identity)
				assert.Equal(t, identityID.String(), resp.Identity.ID)
			},
		},
		{
			name: "no match is a 200 with null identity",
			body: RecognizeRequest{Embedding: make([]float64, domain.EmbeddingDim)},
			setupMock: func(m *MockRecognizer) {
				m.On("Recognize", mock.Anything, mock.Anything).Return(&domain.Recognition{
					Success:    false,
					Confidence: 0,
				}, nil)
			},
			expectedStatus: 200,
			checkResponse: func(t *testing.T, body []byte) {
				var resp RecognizeResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.False(t, resp.Success)
				assert.Nil(t, resp.Identity)
				assert.Equal(t, 0.0, resp.Confidence)
			},
		},
		{
			name: "invalid embedding",
			body: RecognizeRequest{Embedding: []float64{1, 2, 3}},
			setupMock: func(m *MockRecognizer) {
				m.On("Recognize", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidEmbedding)
			},
			expectedStatus: 422,
		},
		{
			name:           "malformed body",
			body:           "{not json",
			setupMock:      func(m *MockRecognizer) {},
			expectedStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockRecognizer{}
			tt.setupMock(mockService)

			handler := NewRecognizeHandler(mockService, testLogger())
			app := newTestApp()
			app.Post("/v1/recognize", handler.Recognize)

			var payload []byte
			if s, ok := tt.body.(string); ok {
				payload = []byte(s)
			} else {
				payload, _ = json.Marshal(tt.body)
			}

			req := httptest.NewRequest("POST", "/v1/recognize", bytes.NewReader(payload))
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
