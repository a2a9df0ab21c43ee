package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/hongminglow/research-tracker/internal/http/respond"
	"github.com/hongminglow/research-tracker/internal/logging"
	"github.com/hongminglow/research-tracker/internal/models"
	"github.com/hongminglow/research-tracker/internal/storage"
)

// ErrInvalidType is returned for an adminGetAll type outside the known kinds.
var ErrInvalidType = errors.New("invalid resource type")

const (
	defaultAggregateLimit = 10
	maxAggregateLimit     = 100
)

// AllLister lists every record of one kind regardless of owner.
type AllLister interface {
	Kind() models.Kind
	ListAll(ctx context.Context) (any, error)
}

// AdminHandler serves the cross-owner views and aggregates under /admin.
type AdminHandler struct {
	listers map[string]AllLister
	stats   storage.StatsStore
	logger  logging.Logger
}

func NewAdminHandler(stats storage.StatsStore, logger logging.Logger, listers ...AllLister) *AdminHandler {
	byName := make(map[string]AllLister, len(listers))
	for _, l := range listers {
		byName[l.Kind().Name] = l
	}
	return &AdminHandler{listers: byName, stats: stats, logger: logger}
}

// Register attaches the admin routes. guards must authenticate and check the admin role.
func (h *AdminHandler) Register(mux *http.ServeMux, guards ...Guard) {
	mux.Handle("GET /admin/adminGetAll", chain(http.HandlerFunc(h.handleGetAll), guards...))
	mux.Handle("GET /admin/entryCounts", chain(http.HandlerFunc(h.handleEntryCounts), guards...))
	mux.Handle("GET /admin/recentlyAdded", chain(http.HandlerFunc(h.handleRecentlyAdded), guards...))
	mux.Handle("GET /admin/topContributors", chain(http.HandlerFunc(h.handleTopContributors), guards...))
}

// listAll resolves typ to a lister and runs it.
func (h *AdminHandler) listAll(ctx context.Context, typ string) (any, error) {
	l, ok := h.listers[typ]
	if !ok {
		return nil, ErrInvalidType
	}
	return l.ListAll(ctx)
}

func (h *AdminHandler) handleGetAll(w http.ResponseWriter, r *http.Request) {
	rows, err := h.listAll(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			respond.Error(w, http.StatusBadRequest, "Invalid resource type")
			return
		}
		h.serverError(w, r, "list all records", err)
		return
	}
	respond.JSON(w, http.StatusOK, rows)
}

func (h *AdminHandler) handleEntryCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.stats.EntryCounts(r.Context())
	if err != nil {
		h.serverError(w, r, "entry counts", err)
		return
	}
	respond.JSON(w, http.StatusOK, counts)
}

func (h *AdminHandler) handleRecentlyAdded(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, defaultAggregateLimit, maxAggregateLimit)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := h.stats.RecentlyAdded(r.Context(), limit)
	if err != nil {
		h.serverError(w, r, "recently added", err)
		return
	}
	respond.JSON(w, http.StatusOK, entries)
}

func (h *AdminHandler) handleTopContributors(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, defaultAggregateLimit, maxAggregateLimit)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	contributors, err := h.stats.TopContributors(r.Context(), limit)
	if err != nil {
		h.serverError(w, r, "top contributors", err)
		return
	}
	respond.JSON(w, http.StatusOK, contributors)
}

func (h *AdminHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(r.Context(), op, "error", err)
	respond.Error(w, http.StatusInternalServerError, "Server error")
}
