package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hongminglow/research-tracker/internal/http/respond"
	"github.com/hongminglow/research-tracker/internal/logging"
	"github.com/hongminglow/research-tracker/internal/patentsearch"
)

// PatentSearcher is satisfied by *patentsearch.Client.
type PatentSearcher interface {
	Search(ctx context.Context, patentNumber string) (json.RawMessage, error)
}

// PatentSearchHandler proxies GET /patents/search to the upstream search API.
// The route is public.
type PatentSearchHandler struct {
	client PatentSearcher
	logger logging.Logger
}

func NewPatentSearchHandler(client PatentSearcher, logger logging.Logger) *PatentSearchHandler {
	return &PatentSearchHandler{client: client, logger: logger}
}

func (h *PatentSearchHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /patents/search", h.handleSearch)
}

func (h *PatentSearchHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("patentNumber")
	body, err := h.client.Search(r.Context(), number)
	if err != nil {
		if errors.Is(err, patentsearch.ErrEmptyQuery) {
			respond.Error(w, http.StatusBadRequest, "patentNumber is required")
			return
		}
		h.logger.Error(r.Context(), "patent search", "error", err, "patent_number", number)
		detail := "upstream request failed"
		var upErr *patentsearch.UpstreamError
		if errors.As(err, &upErr) {
			detail = upErr.Message
		}
		respond.ErrorDetail(w, http.StatusInternalServerError, "Error fetching patent details", detail)
		return
	}
	respond.Raw(w, http.StatusOK, body)
}
