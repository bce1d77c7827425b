package httpapi

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"fyyur/internal/app/shows"
	"fyyur/internal/logging"
	"fyyur/internal/store"
)

const bookingConflictMessage = "Sorry, the artist is not available on this time!"

type errorResponse struct {
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
	Success *bool             `json:"success,omitempty"`
}

// ValidationError reports a rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// validationErrors collects every field problem of one request.
type validationErrors []*ValidationError

func (v validationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	sort.Strings(parts)
	return "invalid request: " + strings.Join(parts, "; ")
}

func (v *validationErrors) add(field, message string) {
	*v = append(*v, &ValidationError{Field: field, Message: message})
}

func (v validationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v validationErrors) fields() map[string]string {
	fields := make(map[string]string, len(v))
	for _, e := range v {
		if _, seen := fields[e.Field]; !seen {
			fields[e.Field] = e.Message
		}
	}
	return fields
}

// writeError maps err to a response. A non-empty failure marks a write: a
// persistence error is then reported as 400 with that message instead of 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	var (
		many        validationErrors
		single      *ValidationError
		persistence *store.PersistenceError
	)

	switch {
	case errors.As(err, &many):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Fields: many.fields()})
	case errors.As(err, &single):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Fields: map[string]string{single.Field: single.Message}})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, shows.ErrBookingConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: bookingConflictMessage})
	case errors.Is(err, store.ErrVenueHasShows):
		success := false
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Success: &success})
	case errors.As(err, &persistence):
		logging.WithContext(r.Context()).Error().Err(err).Str("op", persistence.Op).Msg("storage failure")
		if failure != "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: failure})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "storage failure"})
	default:
		logging.WithContext(r.Context()).Error().Err(err).Msg("unexpected error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
