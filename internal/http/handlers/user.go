package handlers

import (
	"net/http"

	"github.com/hongminglow/research-tracker/internal/http/respond"
	"github.com/hongminglow/research-tracker/internal/logging"
	"github.com/hongminglow/research-tracker/internal/storage"
)

// UserHandler serves the caller's own entries and counts.
type UserHandler struct {
	stats  storage.StatsStore
	logger logging.Logger
}

func NewUserHandler(stats storage.StatsStore, logger logging.Logger) *UserHandler {
	return &UserHandler{stats: stats, logger: logger}
}

func (h *UserHandler) Register(mux *http.ServeMux, guard Guard) {
	mux.Handle("GET /user/entries", chain(http.HandlerFunc(h.handleEntries), guard))
	mux.Handle("GET /user/stats", chain(http.HandlerFunc(h.handleStats), guard))
}

func (h *UserHandler) handleEntries(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrDeny(w, r)
	if !ok {
		return
	}
	entries, err := h.stats.UserEntries(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error(r.Context(), "user entries", "error", err, "user_id", claims.UserID)
		respond.Error(w, http.StatusInternalServerError, "Error fetching entries")
		return
	}
	respond.JSON(w, http.StatusOK, entries)
}

func (h *UserHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrDeny(w, r)
	if !ok {
		return
	}
	stats, err := h.stats.UserStats(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error(r.Context(), "user stats", "error", err, "user_id", claims.UserID)
		respond.Error(w, http.StatusInternalServerError, "Error fetching stats")
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}
