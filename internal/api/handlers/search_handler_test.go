package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherhq/gatherly/internal/api/handlers"
	"github.com/gatherhq/gatherly/internal/domain/entities"
	apperrors "github.com/gatherhq/gatherly/pkg/errors"
)

type stubStirService struct {
	result  *entities.StirResult
	err     error
	lastReq *entities.StirRequest
}

func (s *stubStirService) Search(_ context.Context, req *entities.StirRequest) (*entities.StirResult, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func emptyStirResult() *entities.StirResult {
	return &entities.StirResult{
		Events:      []entities.ScoredEvent{},
		Users:       []entities.ScoredUser{},
		Communities: []entities.ScoredCommunity{},
	}
}

func TestSearchHandler_Search_Success(t *testing.T) {
	service := &stubStirService{result: emptyStirResult()}
	service.result.Events = []entities.ScoredEvent{{ID: "e1", Title: "React Native Meetup", Score: 0.3, Reason: "Keyword match"}}
	handler := handlers.NewSearchHandler(service)

	req := httptest.NewRequest("GET", "/api/stir/search?q=react+meetups&type=events&limit=5", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()

	handler.Search(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, service.lastReq)
	assert.Equal(t, "react meetups", service.lastReq.Query)
	assert.Equal(t, "events", service.lastReq.Type)
	assert.Equal(t, 5, service.lastReq.Limit)
	assert.Equal(t, "user-1", service.lastReq.UserID)

	var result entities.StirResult
	err := json.NewDecoder(w.Body).Decode(&result)
	assert.NoError(t, err)
	assert.Len(t, result.Events, 1)
	assert.NotNil(t, result.Users)
	assert.NotNil(t, result.Communities)
}

func TestSearchHandler_Search_DateRangeParams(t *testing.T) {
	service := &stubStirService{result: emptyStirResult()}
	handler := handlers.NewSearchHandler(service)

	req := httptest.NewRequest("GET", "/api/stir/search?q=events&date_start=2026-09-01&date_end=2026-09-30", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, service.lastReq.DateRange)
	assert.Equal(t, "2026-09-01", service.lastReq.DateRange.Start)
	assert.Equal(t, "2026-09-30", service.lastReq.DateRange.End)
}

func TestSearchHandler_Search_BadLimit(t *testing.T) {
	service := &stubStirService{result: emptyStirResult()}
	handler := handlers.NewSearchHandler(service)

	req := httptest.NewRequest("GET", "/api/stir/search?q=react&limit=lots", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, service.lastReq)
}

func TestSearchHandler_Search_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperrors.NewValidationError("query is required"), http.StatusBadRequest},
		{"unavailable", apperrors.NewUnavailableError("language model is not configured"), http.StatusServiceUnavailable},
		{"external", apperrors.NewExternalError("intent parsing failed", errors.New("timeout")), http.StatusBadGateway},
		{"internal", apperrors.NewInternalError("store down", errors.New("dial refused")), http.StatusInternalServerError},
		{"untyped", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := &stubStirService{err: tc.err}
			handler := handlers.NewSearchHandler(service)

			req := httptest.NewRequest("GET", "/api/stir/search?q=react", nil)
			w := httptest.NewRecorder()

			handler.Search(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)

			var response map[string]string
			err := json.NewDecoder(w.Body).Decode(&response)
			assert.NoError(t, err)
			assert.NotEmpty(t, response["error"])
		})
	}
}
