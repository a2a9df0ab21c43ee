package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hongminglow/research-tracker/internal/auth"
	"github.com/hongminglow/research-tracker/internal/http/respond"
	"github.com/hongminglow/research-tracker/internal/middleware"
	"github.com/hongminglow/research-tracker/internal/validation"
)

// Guard wraps a handler with an access check.
type Guard func(http.Handler) http.Handler

// chain applies guards so that the first one runs first.
func chain(h http.Handler, guards ...Guard) http.Handler {
	for i := len(guards) - 1; i >= 0; i-- {
		h = guards[i](h)
	}
	return h
}

const maxBodyBytes = 1 << 20

var errBadID = errors.New("invalid id")

// decodeJSON reads a JSON body into dst. Syntax and type errors are reported
// as *validation.Error so callers answer 400 either way.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return validation.Field(typeErr.Field)
		}
		return &validation.Error{Fields: []string{"body"}}
	}
	return nil
}

// parseID reads the {id} path value as a positive integer.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errBadID, r.PathValue("id"))
	}
	return id, nil
}

// parseLimit reads ?limit=, defaulting to def and capped at upper.
func parseLimit(r *http.Request, def, upper int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > upper {
		return 0, fmt.Errorf("limit must be between 1 and %d", upper)
	}
	return n, nil
}

// claimsOrDeny returns the caller's claims. It only fails when a route was
// registered without Authenticate.
func claimsOrDeny(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusForbidden, "Token required or malformed")
		return nil, false
	}
	return claims, true
}

// writeValidation answers 400 for *validation.Error and reports whether it did.
func writeValidation(w http.ResponseWriter, err error) bool {
	var verr *validation.Error
	if errors.As(err, &verr) {
		respond.Error(w, http.StatusBadRequest, verr.Error())
		return true
	}
	return false
}
