package httpapi

import "net/http"

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := s.shows.List(r.Context())
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, shows)
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	var req showRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	show, err := req.toModel()
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	created, err := s.shows.Create(r.Context(), show)
	if err != nil {
		writeError(w, r, err, "An error occurred. Show could not be listed.")
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{
		ID:      created.ID,
		Message: "Show was successfully listed!",
	})
}
