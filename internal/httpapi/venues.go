package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"fyyur/internal/store"
)

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	groups, err := s.venues.ListGroupedByCity(r.Context())
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}

	result, err := s.venues.Search(r.Context(), req.SearchTerm)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue ID"})
		return
	}

	detail, err := s.venues.Detail(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	var req venueRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, r, err, "")
		return
	}

	venue, loc := req.toModel()
	created, err := s.venues.Create(r.Context(), venue, loc)
	if err != nil {
		writeError(w, r, err, fmt.Sprintf("An error occurred. Venue %s could not be listed.", req.Name))
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{
		ID:      created.ID,
		Message: fmt.Sprintf("Venue %s was successfully listed!", created.Name),
	})
}

func (s *Server) handleEditVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue ID"})
		return
	}

	var req venueRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, r, err, "")
		return
	}

	venue, loc := req.toModel()
	detail, err := s.venues.Update(r.Context(), id, venue, loc)
	if err != nil {
		writeError(w, r, err, fmt.Sprintf("An error occurred. Venue %s could not be updated.", req.Name))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type deleteResponse struct {
	Success bool `json:"success"`
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue ID"})
		return
	}

	if err := s.venues.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			success := false
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Success: &success})
			return
		}
		writeError(w, r, err, "An error occurred. Venue could not be deleted.")
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Success: true})
}
