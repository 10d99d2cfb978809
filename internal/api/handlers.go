package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/doxnav/internal/apperr"
	"github.com/starford/doxnav/internal/docsite"
	"github.com/starford/doxnav/internal/index"
	"github.com/starford/doxnav/internal/linkcheck"
	"github.com/starford/doxnav/internal/models"
	"github.com/starford/doxnav/internal/navtree"
)

// Handler holds API route handlers.
type Handler struct {
	site *docsite.Site
	db   index.EntryIndex
}

// NewHandler creates a new Handler.
func NewHandler(site *docsite.Site, db index.EntryIndex) *Handler {
	return &Handler{site: site, db: db}
}

// writeNavError maps navigation errors to status codes.
func writeNavError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrOutOfRange):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrResourceUnavailable):
		slog.Warn(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, errorBody(err.Error()))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// Nav handles GET /nav.
//
//	@Summary		Navigation tree with inline subtrees; deferred nodes are not expanded
//	@Tags			nav
//	@Produce		json
//	@Success		200	{object}	NavResponse
//	@Security		BearerAuth
//	@Router			/nav [get]
func (h *Handler) Nav(w http.ResponseWriter, r *http.Request) {
	snap := h.site.Current()
	writeJSON(w, http.StatusOK, NavResponse{
		Revision:   snap.Revision,
		LoadedAt:   snap.LoadedAt,
		SyncOnMsg:  snap.SyncOnMsg,
		SyncOffMsg: snap.SyncOffMsg,
		Roots:      nodeDTOs(snap.Nav, snap.Nav.Roots(), -1),
	})
}

// GetNode handles GET /nav/nodes/{id}.
//
//	@Summary		One node with its children, loading a deferred fragment if needed
//	@Tags			nav
//	@Produce		json
//	@Param			id	path		string	true	"Node ID (dotted child positions)"
//	@Success		200	{object}	NodeResponse
//	@Failure		404	{object}	errResponse
//	@Failure		503	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/nav/nodes/{id} [get]
func (h *Handler) GetNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	nav := h.site.Index()

	n, err := nav.Node(r.Context(), id)
	if err != nil {
		writeNavError(w, "get node", err)
		return
	}
	kids, err := nav.Resolve(r.Context(), n)
	if err != nil {
		writeNavError(w, "get node", err)
		return
	}

	d := nodeDTO(nav, n, 0)
	d.Children = nodeDTOs(nav, kids, 0)
	resp := NodeResponse{NodeDTO: d, ParentID: navtree.ParentID(n.ID)}

	entry, err := h.db.GetEntry(n.ID)
	switch {
	case err == nil:
		resp.Seq, resp.Depth = &entry.Seq, &entry.Depth
	case !errors.Is(err, apperr.ErrNotFound):
		slog.Warn("get node: entry lookup failed", slog.String("id", n.ID), slog.String("error", err.Error()))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetPath handles GET /nav/nodes/{id}/path.
//
//	@Summary		Breadcrumb from the root down to a node
//	@Tags			nav
//	@Produce		json
//	@Param			id	path		string	true	"Node ID"
//	@Success		200	{object}	PathResponse
//	@Failure		404	{object}	errResponse
//	@Failure		503	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/nav/nodes/{id}/path [get]
func (h *Handler) GetPath(w http.ResponseWriter, r *http.Request) {
	nav := h.site.Index()
	path, err := nav.Path(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeNavError(w, "get path", err)
		return
	}
	writeJSON(w, http.StatusOK, PathResponse{Path: nodeDTOs(nav, path, 0)})
}

// ListIndex handles GET /index.
//
//	@Summary		Flat sequence index
//	@Tags			index
//	@Produce		json
//	@Success		200	{object}	IndexResponse
//	@Security		BearerAuth
//	@Router			/index [get]
func (h *Handler) ListIndex(w http.ResponseWriter, r *http.Request) {
	indexed, err := h.db.EntryCount()
	if err != nil {
		slog.Error("list index failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	nav := h.site.Index()
	writeJSON(w, http.StatusOK, IndexResponse{Count: nav.Len(), Indexed: indexed, Entries: nav.Entries()})
}

// GetIndexEntry handles GET /index/{seq}.
//
//	@Summary		Page reference at a flat index position
//	@Tags			index
//	@Produce		json
//	@Param			seq	path		int	true	"Zero-based position"
//	@Success		200	{object}	IndexEntryResponse
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/index/{seq} [get]
func (h *Handler) GetIndexEntry(w http.ResponseWriter, r *http.Request) {
	seq, err := strconv.Atoi(chi.URLParam(r, "seq"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("seq must be an integer"))
		return
	}
	target, err := h.site.Index().Lookup(seq)
	if err != nil {
		writeNavError(w, "lookup", err)
		return
	}
	writeJSON(w, http.StatusOK, IndexEntryResponse{Seq: seq, Target: target})
}

// Search handles GET /search.
//
//	@Summary		Search node titles and targets
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.db.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Locate handles GET /locate.
//
//	@Summary		Entries pointing at a page (and its anchors)
//	@Tags			search
//	@Produce		json
//	@Param			target	query		string	true	"Page, optionally with #anchor"
//	@Success		200		{object}	LocateResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/locate [get]
func (h *Handler) Locate(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	if target == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'target' is required"))
		return
	}
	entries, err := h.db.EntriesByTarget(target)
	if err != nil {
		slog.Error("locate failed", slog.String("target", target), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	writeJSON(w, http.StatusOK, LocateResponse{Target: target, Entries: entries})
}

// Check handles GET /check.
//
//	@Summary		Consistency and broken link report
//	@Tags			check
//	@Produce		json
//	@Success		200	{object}	linkcheck.Report
//	@Security		BearerAuth
//	@Router			/check [get]
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	rep, err := linkcheck.Check(r.Context(), h.site.Index(), h.site.Store())
	if err != nil {
		slog.Error("check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
