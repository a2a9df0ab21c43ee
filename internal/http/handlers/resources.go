package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hongminglow/research-tracker/internal/http/respond"
	"github.com/hongminglow/research-tracker/internal/logging"
	"github.com/hongminglow/research-tracker/internal/models"
	"github.com/hongminglow/research-tracker/internal/models/dto"
	"github.com/hongminglow/research-tracker/internal/storage"
	"github.com/hongminglow/research-tracker/internal/validation"
)

// recordRequest is a request body that converts into a stored record.
type recordRequest[P models.Record] interface {
	Record() (P, error)
}

// ResourceHandler serves the owner-scoped CRUD routes of one record kind:
//
//	POST   /{kind}/add
//	GET    /{kind}/{listPath}
//	PUT    /{kind}/update/{id}
//	DELETE /{kind}/delete/{id}
type ResourceHandler[P models.Record, Req recordRequest[P]] struct {
	kind     models.Kind
	listPath string
	store    storage.RecordStore[P]
	logger   logging.Logger
}

func NewResourceHandler[P models.Record, Req recordRequest[P]](kind models.Kind, listPath string, store storage.RecordStore[P], logger logging.Logger) *ResourceHandler[P, Req] {
	return &ResourceHandler[P, Req]{
		kind:     kind,
		listPath: listPath,
		store:    store,
		logger:   logger.With("kind", kind.Name),
	}
}

func NewPatentHandler(store storage.RecordStore[*models.Patent], logger logging.Logger) *ResourceHandler[*models.Patent, dto.PatentRequest] {
	return NewResourceHandler[*models.Patent, dto.PatentRequest](models.Patents, "getPatent", store, logger)
}

func NewPublicationHandler(store storage.RecordStore[*models.Publication], logger logging.Logger) *ResourceHandler[*models.Publication, dto.PublicationRequest] {
	return NewResourceHandler[*models.Publication, dto.PublicationRequest](models.Publications, "getPublications", store, logger)
}

func NewEventHandler(store storage.RecordStore[*models.Event], logger logging.Logger) *ResourceHandler[*models.Event, dto.EventRequest] {
	return NewResourceHandler[*models.Event, dto.EventRequest](models.Events, "getEvents", store, logger)
}

func NewConferenceHandler(store storage.RecordStore[*models.Conference], logger logging.Logger) *ResourceHandler[*models.Conference, dto.ConferenceRequest] {
	return NewResourceHandler[*models.Conference, dto.ConferenceRequest](models.Conferences, "getConferences", store, logger)
}

// Register attaches the kind's routes behind guard.
func (h *ResourceHandler[P, Req]) Register(mux *http.ServeMux, guard Guard) {
	base := "/" + h.kind.Name
	mux.Handle("POST "+base+"/add", chain(http.HandlerFunc(h.handleCreate), guard))
	mux.Handle("GET "+base+"/"+h.listPath, chain(http.HandlerFunc(h.handleList), guard))
	mux.Handle("PUT "+base+"/update/{id}", chain(http.HandlerFunc(h.handleUpdate), guard))
	mux.Handle("DELETE "+base+"/delete/{id}", chain(http.HandlerFunc(h.handleDelete), guard))
}

// Kind reports which record kind the handler serves.
func (h *ResourceHandler[P, Req]) Kind() models.Kind {
	return h.kind
}

// ListAll returns every record of the kind across owners.
func (h *ResourceHandler[P, Req]) ListAll(ctx context.Context) (any, error) {
	return h.store.ListAll(ctx)
}

// decode reads and validates the body and converts it to a record owned by ownerID.
func (h *ResourceHandler[P, Req]) decode(w http.ResponseWriter, r *http.Request, ownerID int64) (P, error) {
	var zero P
	var req Req
	if err := decodeJSON(w, r, &req); err != nil {
		return zero, err
	}
	if err := validation.Struct(req); err != nil {
		return zero, err
	}
	rec, err := req.Record()
	if err != nil {
		return zero, err
	}
	rec.Owned().UserID = ownerID
	return rec, nil
}

func (h *ResourceHandler[P, Req]) handleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrDeny(w, r)
	if !ok {
		return
	}
	rec, err := h.decode(w, r, claims.UserID)
	if err != nil {
		h.writeError(w, r, "creating", err)
		return
	}

	id, err := h.store.Create(r.Context(), rec)
	if err != nil {
		h.writeError(w, r, "creating", err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message":      h.kind.Label + " created successfully",
		"id":           id,
		h.kind.IDKey(): id,
	})
}

func (h *ResourceHandler[P, Req]) handleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrDeny(w, r)
	if !ok {
		return
	}
	recs, err := h.store.ListByOwner(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, r, "fetching", err)
		return
	}
	respond.JSON(w, http.StatusOK, recs)
}

func (h *ResourceHandler[P, Req]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrDeny(w, r)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid "+strings.ToLower(h.kind.Label)+" id")
		return
	}
	rec, err := h.decode(w, r, claims.UserID)
	if err != nil {
		h.writeError(w, r, "updating", err)
		return
	}
	rec.Owned().ID = id

	if err := h.store.Update(r.Context(), rec); err != nil {
		h.writeError(w, r, "updating", err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Message{Message: h.kind.Label + " updated successfully"})
}

func (h *ResourceHandler[P, Req]) handleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrDeny(w, r)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid "+strings.ToLower(h.kind.Label)+" id")
		return
	}

	if err := h.store.Delete(r.Context(), id, claims.UserID); err != nil {
		h.writeError(w, r, "deleting", err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Message{Message: h.kind.Label + " deleted successfully"})
}

// writeError maps validation and storage errors to responses. Anything
// unexpected is logged and answered with a generic 500.
func (h *ResourceHandler[P, Req]) writeError(w http.ResponseWriter, r *http.Request, action string, err error) {
	if writeValidation(w, err) {
		return
	}
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, h.kind.Label+" not found or no permission")
		return
	}
	h.logger.Error(r.Context(), action+" record", "error", err)
	respond.Error(w, http.StatusInternalServerError, fmt.Sprintf("Error in %s %s", action, strings.ToLower(h.kind.Label)))
}
