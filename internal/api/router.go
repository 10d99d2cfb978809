package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/doxnav/internal/docsite"
	"github.com/starford/doxnav/internal/index"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(site *docsite.Site, db index.EntryIndex, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(site, db)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Tree.
	r.Get("/nav", h.Nav)
	r.Get("/nav/nodes/{id}", h.GetNode)
	r.Get("/nav/nodes/{id}/path", h.GetPath)

	// Flat index.
	r.Get("/index", h.ListIndex)
	r.Get("/index/{seq}", h.GetIndexEntry)

	// Search.
	r.Get("/search", h.Search)
	r.Get("/locate", h.Locate)

	r.Get("/check", h.Check)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
