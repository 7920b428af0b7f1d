package routes

import (
	"net/http"

	"github.com/gatherhq/gatherly/internal/api/handlers"
	"github.com/gatherhq/gatherly/internal/api/middleware"
	"github.com/gatherhq/gatherly/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler    *handlers.SearchHandler
	eventHandler     *handlers.EventHandler
	communityHandler *handlers.CommunityHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	eventHandler *handlers.EventHandler,
	communityHandler *handlers.CommunityHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		searchHandler:    searchHandler,
		eventHandler:     eventHandler,
		communityHandler: communityHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Stir search endpoint
	r.mux.HandleFunc("GET /api/stir/search", r.searchHandler.Search)

	// Event endpoints
	r.mux.HandleFunc("GET /api/events", r.eventHandler.ListEvents)
	r.mux.HandleFunc("GET /api/events/{id}", r.eventHandler.GetEvent)

	// Community endpoints
	r.mux.HandleFunc("GET /api/communities", r.communityHandler.ListCommunities)
	r.mux.HandleFunc("GET /api/communities/{id}", r.communityHandler.GetCommunity)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set on every response
	handler = middleware.CORSMiddleware(handler)

	return handler
}
