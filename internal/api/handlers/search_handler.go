package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	apperrors "github.com/gatherhq/gatherly/pkg/errors"
)

// StirSearcher runs a natural-language search.
type StirSearcher interface {
	Search(ctx context.Context, req *entities.StirRequest) (*entities.StirResult, error)
}

// SearchHandler handles Stir search HTTP requests
type SearchHandler struct {
	stir StirSearcher
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(stir StirSearcher) *SearchHandler {
	return &SearchHandler{stir: stir}
}

// Search handles GET /api/stir/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &entities.StirRequest{
		Query:    query.Get("q"),
		Type:     query.Get("type"),
		Location: query.Get("location"),
		UserID:   r.Header.Get("X-User-ID"),
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		req.Limit = limit
	}

	if start, end := query.Get("date_start"), query.Get("date_end"); start != "" || end != "" {
		req.DateRange = &entities.DateRange{Start: start, End: end}
	}

	result, err := h.stir.Search(r.Context(), req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// respondWithAppError maps the error taxonomy onto HTTP status codes.
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
