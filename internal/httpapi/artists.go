package httpapi

import (
	"fmt"
	"net/http"
)

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.artists.List(r.Context())
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, artists)
}

func (s *Server) handleSearchArtists(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}

	result, err := s.artists.Search(r.Context(), req.SearchTerm)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist ID"})
		return
	}

	detail, err := s.artists.Detail(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	var req artistRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, r, err, "")
		return
	}

	artist, loc := req.toModel()
	created, err := s.artists.Create(r.Context(), artist, loc)
	if err != nil {
		writeError(w, r, err, fmt.Sprintf("An error occurred. Artist %s could not be listed.", req.Name))
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{
		ID:      created.ID,
		Message: fmt.Sprintf("Artist %s was successfully listed!", created.Name),
	})
}

func (s *Server) handleEditArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist ID"})
		return
	}

	var req artistRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, r, err, "")
		return
	}

	artist, loc := req.toModel()
	detail, err := s.artists.Update(r.Context(), id, artist, loc)
	if err != nil {
		writeError(w, r, err, fmt.Sprintf("An error occurred. Artist %s could not be updated.", req.Name))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
