// Package memstore keeps the directory in process memory. It mirrors the
// behaviour of the Postgres store and backs local runs and service tests.
package memstore

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"fyyur/internal/models"
	"fyyur/internal/store"
)

// Store is an in-memory directory safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	states  map[int64]models.State
	cities  map[int64]models.City
	venues  map[int64]models.Venue
	artists map[int64]models.Artist
	shows   map[int64]models.Show
	nextID  map[string]int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		states:  make(map[int64]models.State),
		cities:  make(map[int64]models.City),
		venues:  make(map[int64]models.Venue),
		artists: make(map[int64]models.Artist),
		shows:   make(map[int64]models.Show),
		nextID:  make(map[string]int64),
	}
}

func (s *Store) allocID(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// ResolveCity returns the first city named cityName, creating it and its
// state when missing. The city name must match exactly.
func (s *Store) ResolveCity(ctx context.Context, cityName, stateName string) (models.City, error) {
	if err := ctx.Err(); err != nil {
		return models.City{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resolveCityLocked(cityName, stateName), nil
}

func (s *Store) resolveCityLocked(cityName, stateName string) models.City {
	cityName = strings.TrimSpace(cityName)
	stateName = strings.TrimSpace(stateName)

	for _, id := range slices.Sorted(maps.Keys(s.cities)) {
		if c := s.cities[id]; c.Name == cityName {
			return c
		}
	}

	var stateID int64
	for id, st := range s.states {
		if st.Name == stateName {
			stateID = id
			break
		}
	}
	if stateID == 0 {
		stateID = s.allocID("states")
		s.states[stateID] = models.State{ID: stateID, Name: stateName}
	}

	city := models.City{ID: s.allocID("cities"), Name: cityName, StateID: stateID}
	s.cities[city.ID] = city
	return city
}

// ListCities returns every city with its state name, ordered by id.
func (s *Store) ListCities(ctx context.Context) ([]models.CityWithState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.CityWithState, 0, len(s.cities))
	for _, id := range slices.Sorted(maps.Keys(s.cities)) {
		c := s.cities[id]
		result = append(result, models.CityWithState{City: c, StateName: s.states[c.StateID].Name})
	}
	return result, nil
}

// ListVenueSummaries returns the summary of every venue, ordered by id.
func (s *Store) ListVenueSummaries(ctx context.Context, now time.Time) ([]models.VenueSummary, error) {
	return s.venueSummaries(ctx, now, func(models.Venue) bool { return true })
}

// RecentVenues returns up to limit venues, newest first.
func (s *Store) RecentVenues(ctx context.Context, limit int, now time.Time) ([]models.VenueSummary, error) {
	all, err := s.venueSummaries(ctx, now, func(models.Venue) bool { return true })
	if err != nil {
		return nil, err
	}
	slices.Reverse(all)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// SearchVenues matches term, ignoring case, against the venue name and the
// name of its city or state.
func (s *Store) SearchVenues(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error) {
	needle := fold(strings.TrimSpace(term))
	return s.venueSummaries(ctx, now, func(v models.Venue) bool {
		return s.matches(needle, v.Name, v.CityID)
	})
}

func (s *Store) venueSummaries(ctx context.Context, now time.Time, keep func(models.Venue) bool) ([]models.VenueSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.VenueSummary{}
	for _, id := range slices.Sorted(maps.Keys(s.venues)) {
		v := s.venues[id]
		if !keep(v) {
			continue
		}
		result = append(result, models.VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			CityID:           v.CityID,
			NumUpcomingShows: s.countUpcoming(now, func(sh models.Show) bool { return sh.VenueID == v.ID }),
		})
	}
	return result, nil
}

// GetVenue retrieves a venue with its city and state names.
func (s *Store) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.venues[id]
	if !ok {
		return nil, store.ErrVenueNotFound
	}
	v.Genres = slices.Clone(v.Genres)
	v.City, v.State = s.location(v.CityID)
	return &v, nil
}

// CreateVenue stores venue in the city named by loc.
func (s *Store) CreateVenue(ctx context.Context, venue *models.Venue, loc models.Location) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	city := s.resolveCityLocked(loc.City, loc.State)
	venue.ID = s.allocID("venues")
	venue.CityID = city.ID

	stored := *venue
	stored.Genres = slices.Clone(venue.Genres)
	stored.City, stored.State = "", ""
	s.venues[venue.ID] = stored
	return venue, nil
}

// UpdateVenue replaces the editable fields of venue id.
func (s *Store) UpdateVenue(ctx context.Context, id int64, venue *models.Venue, loc models.Location) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[id]; !ok {
		return nil, store.ErrVenueNotFound
	}
	city := s.resolveCityLocked(loc.City, loc.State)
	venue.ID = id
	venue.CityID = city.ID

	stored := *venue
	stored.Genres = slices.Clone(venue.Genres)
	stored.City, stored.State = "", ""
	s.venues[id] = stored
	return venue, nil
}

// DeleteVenue removes a venue that has no shows booked.
func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sh := range s.shows {
		if sh.VenueID == id {
			return store.ErrVenueHasShows
		}
	}
	if _, ok := s.venues[id]; !ok {
		return store.ErrVenueNotFound
	}
	delete(s.venues, id)
	return nil
}

// ListArtistSummaries returns the summary of every artist, ordered by id.
func (s *Store) ListArtistSummaries(ctx context.Context, now time.Time) ([]models.ArtistSummary, error) {
	return s.artistSummaries(ctx, now, func(models.Artist) bool { return true })
}

// RecentArtists returns up to limit artists, newest first.
func (s *Store) RecentArtists(ctx context.Context, limit int, now time.Time) ([]models.ArtistSummary, error) {
	all, err := s.artistSummaries(ctx, now, func(models.Artist) bool { return true })
	if err != nil {
		return nil, err
	}
	slices.Reverse(all)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// SearchArtists matches term, ignoring case, against the artist name and the
// name of its city or state.
func (s *Store) SearchArtists(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error) {
	needle := fold(strings.TrimSpace(term))
	return s.artistSummaries(ctx, now, func(a models.Artist) bool {
		return s.matches(needle, a.Name, a.CityID)
	})
}

func (s *Store) artistSummaries(ctx context.Context, now time.Time, keep func(models.Artist) bool) ([]models.ArtistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.ArtistSummary{}
	for _, id := range slices.Sorted(maps.Keys(s.artists)) {
		a := s.artists[id]
		if !keep(a) {
			continue
		}
		result = append(result, models.ArtistSummary{
			ID:               a.ID,
			Name:             a.Name,
			NumUpcomingShows: s.countUpcoming(now, func(sh models.Show) bool { return sh.ArtistID == a.ID }),
		})
	}
	return result, nil
}

// GetArtist retrieves an artist with its city and state names.
func (s *Store) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.artists[id]
	if !ok {
		return nil, store.ErrArtistNotFound
	}
	a.Genres = slices.Clone(a.Genres)
	a.City, a.State = s.location(a.CityID)
	return &a, nil
}

// CreateArtist stores artist in the city named by loc.
func (s *Store) CreateArtist(ctx context.Context, artist *models.Artist, loc models.Location) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	city := s.resolveCityLocked(loc.City, loc.State)
	artist.ID = s.allocID("artists")
	artist.CityID = city.ID

	stored := *artist
	stored.Genres = slices.Clone(artist.Genres)
	stored.City, stored.State = "", ""
	s.artists[artist.ID] = stored
	return artist, nil
}

// UpdateArtist replaces the editable fields of artist id.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist *models.Artist, loc models.Location) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.artists[id]; !ok {
		return nil, store.ErrArtistNotFound
	}
	city := s.resolveCityLocked(loc.City, loc.State)
	artist.ID = id
	artist.CityID = city.ID

	stored := *artist
	stored.Genres = slices.Clone(artist.Genres)
	stored.City, stored.State = "", ""
	s.artists[id] = stored
	return artist, nil
}

// ListShows returns every show ordered by id.
func (s *Store) ListShows(ctx context.Context) ([]models.ShowListing, error) {
	return s.showListings(ctx, func(models.Show) bool { return true })
}

// ListShowsByVenue returns the shows booked at a venue ordered by start time.
func (s *Store) ListShowsByVenue(ctx context.Context, venueID int64) ([]models.ShowListing, error) {
	shows, err := s.showListings(ctx, func(sh models.Show) bool { return sh.VenueID == venueID })
	sortByStart(shows)
	return shows, err
}

// ListShowsByArtist returns the shows of an artist ordered by start time.
func (s *Store) ListShowsByArtist(ctx context.Context, artistID int64) ([]models.ShowListing, error) {
	shows, err := s.showListings(ctx, func(sh models.Show) bool { return sh.ArtistID == artistID })
	sortByStart(shows)
	return shows, err
}

// CreateShow stores a show. Both the venue and the artist must exist.
func (s *Store) CreateShow(ctx context.Context, show *models.Show) (*models.Show, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[show.VenueID]; !ok {
		return nil, store.ErrVenueNotFound
	}
	if _, ok := s.artists[show.ArtistID]; !ok {
		return nil, store.ErrArtistNotFound
	}

	show.ID = s.allocID("shows")
	show.StartTime = models.WallClock(show.StartTime)
	s.shows[show.ID] = *show
	return show, nil
}

func (s *Store) showListings(ctx context.Context, keep func(models.Show) bool) ([]models.ShowListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.ShowListing{}
	for _, id := range slices.Sorted(maps.Keys(s.shows)) {
		sh := s.shows[id]
		if !keep(sh) {
			continue
		}
		artist := s.artists[sh.ArtistID]
		result = append(result, models.ShowListing{
			Show:            sh,
			VenueName:       s.venues[sh.VenueID].Name,
			ArtistName:      artist.Name,
			ArtistImageLink: artist.ImageLink,
		})
	}
	return result, nil
}

func sortByStart(shows []models.ShowListing) {
	slices.SortStableFunc(shows, func(a, b models.ShowListing) int {
		return a.StartTime.Compare(b.StartTime)
	})
}

// countUpcoming must be called with s.mu held.
func (s *Store) countUpcoming(now time.Time, match func(models.Show) bool) int {
	n := 0
	for _, sh := range s.shows {
		if match(sh) && !sh.StartTime.Before(now) {
			n++
		}
	}
	return n
}

// location must be called with s.mu held.
func (s *Store) location(cityID int64) (city, state string) {
	c := s.cities[cityID]
	return c.Name, s.states[c.StateID].Name
}

// matches must be called with s.mu held.
func (s *Store) matches(needle, name string, cityID int64) bool {
	if strings.Contains(fold(name), needle) {
		return true
	}
	city, state := s.location(cityID)
	return strings.Contains(fold(city), needle) || strings.Contains(fold(state), needle)
}

func fold(s string) string {
	return cases.Fold().String(s)
}
