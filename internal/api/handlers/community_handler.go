package handlers

import (
	"net/http"
	"strconv"

	"github.com/gatherhq/gatherly/internal/domain/repositories"
)

// CommunityHandler handles community-related HTTP requests
type CommunityHandler struct {
	communityRepo repositories.CommunityRepository
}

// NewCommunityHandler creates a new community handler
func NewCommunityHandler(communityRepo repositories.CommunityRepository) *CommunityHandler {
	return &CommunityHandler{
		communityRepo: communityRepo,
	}
}

// GetCommunity handles GET /api/communities/{id}
func (h *CommunityHandler) GetCommunity(w http.ResponseWriter, r *http.Request) {
	communityID := r.PathValue("id")
	if communityID == "" {
		respondWithError(w, http.StatusBadRequest, "community ID is required")
		return
	}

	community, err := h.communityRepo.GetByID(r.Context(), communityID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, community)
}

// ListCommunities handles GET /api/communities
func (h *CommunityHandler) ListCommunities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.CommunityFilter{Limit: 30}
	if raw := query.Get("public"); raw != "" {
		isPublic := raw == "true"
		filter.IsPublic = &isPublic
	}
	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	communities, err := h.communityRepo.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list communities")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"communities": communities,
		"count":       len(communities),
	})
}
