package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"fyyur/internal/models"
)

// recentLimit is how many venues and artists the home listing shows.
const recentLimit = 10

// VenueService describes venue directory workflows.
type VenueService interface {
	ListGroupedByCity(ctx context.Context) ([]models.CityVenues, error)
	Recent(ctx context.Context, limit int) ([]models.VenueSummary, error)
	Search(ctx context.Context, term string) (models.SearchResult[models.VenueSummary], error)
	Detail(ctx context.Context, id int64) (models.VenueDetail, error)
	Create(ctx context.Context, venue *models.Venue, loc models.Location) (*models.Venue, error)
	Update(ctx context.Context, id int64, venue *models.Venue, loc models.Location) (models.VenueDetail, error)
	Delete(ctx context.Context, id int64) error
}

// ArtistService describes artist directory workflows.
type ArtistService interface {
	List(ctx context.Context) ([]models.ArtistSummary, error)
	Recent(ctx context.Context, limit int) ([]models.ArtistSummary, error)
	Search(ctx context.Context, term string) (models.SearchResult[models.ArtistSummary], error)
	Detail(ctx context.Context, id int64) (models.ArtistDetail, error)
	Create(ctx context.Context, artist *models.Artist, loc models.Location) (*models.Artist, error)
	Update(ctx context.Context, id int64, artist *models.Artist, loc models.Location) (models.ArtistDetail, error)
}

// ShowService lists and books shows.
type ShowService interface {
	List(ctx context.Context) ([]models.ShowDetail, error)
	Create(ctx context.Context, show *models.Show) (*models.Show, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	venues  VenueService
	artists ArtistService
	shows   ShowService
}

// New configures a Server with the given services.
func New(venues VenueService, artists ArtistService, shows ShowService) *Server {
	return &Server{
		venues:  venues,
		artists: artists,
		shows:   shows,
	}
}

// Routes exposes the HTTP handlers of the directory.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /{$}", s.handleHome)

	mux.HandleFunc("GET /venues", s.handleListVenues)
	mux.HandleFunc("POST /venues", s.handleCreateVenue)
	mux.HandleFunc("POST /venues/search", s.handleSearchVenues)
	mux.HandleFunc("GET /venues/{id}", s.handleGetVenue)
	mux.HandleFunc("DELETE /venues/{id}", s.handleDeleteVenue)
	mux.HandleFunc("GET /venues/{id}/edit", s.handleGetVenue)
	mux.HandleFunc("POST /venues/{id}/edit", s.handleEditVenue)

	mux.HandleFunc("GET /artists", s.handleListArtists)
	mux.HandleFunc("POST /artists", s.handleCreateArtist)
	mux.HandleFunc("POST /artists/search", s.handleSearchArtists)
	mux.HandleFunc("GET /artists/{id}", s.handleGetArtist)
	mux.HandleFunc("GET /artists/{id}/edit", s.handleGetArtist)
	mux.HandleFunc("POST /artists/{id}/edit", s.handleEditArtist)

	mux.HandleFunc("GET /shows", s.handleListShows)
	mux.HandleFunc("POST /shows", s.handleCreateShow)

	return mux
}

type homeResponse struct {
	Venues  []models.VenueSummary  `json:"venues"`
	Artists []models.ArtistSummary `json:"artists"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	venues, err := s.venues.Recent(r.Context(), recentLimit)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	artists, err := s.artists.Recent(r.Context(), recentLimit)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	if venues == nil {
		venues = []models.VenueSummary{}
	}
	if artists == nil {
		artists = []models.ArtistSummary{}
	}
	writeJSON(w, http.StatusOK, homeResponse{Venues: venues, Artists: artists})
}

type createdResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
