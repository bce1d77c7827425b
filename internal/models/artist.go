package models

import "time"

// Default availability window of a newly listed artist.
const (
	DefaultAvailableFrom = 0
	DefaultAvailableTill = 23
)

// Artist represents a performer that can be booked for shows.
type Artist struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	CityID             int64    `json:"city_id"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
	AvailableFrom      int      `json:"available_from"`
	AvailableTill      int      `json:"available_till"`

	// Populated via JOIN queries (not stored in artists table)
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// ArtistSummary is the projection used by artist listings and search results.
type ArtistSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// ArtistDetail is the full projection of an artist and its shows. Show
// entries carry the venue they are booked at.
type ArtistDetail struct {
	ID                 int64        `json:"id"`
	Name               string       `json:"name"`
	Genres             []string     `json:"genres"`
	City               string       `json:"city"`
	State              string       `json:"state"`
	Phone              string       `json:"phone"`
	Website            string       `json:"website"`
	FacebookLink       string       `json:"facebook_link"`
	SeekingVenue       bool         `json:"seeking_venue"`
	SeekingDescription string       `json:"seeking_description"`
	ImageLink          string       `json:"image_link"`
	AvailableFrom      int          `json:"available_from"`
	AvailableTill      int          `json:"available_till"`
	PastShows          []ShowDetail `json:"past_shows"`
	UpcomingShows      []ShowDetail `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// NewArtistDetail builds the detail view of a from the shows it performs.
func NewArtistDetail(a Artist, shows []ShowListing, now time.Time) ArtistDetail {
	past, upcoming := PartitionShows(shows, now)

	detail := ArtistDetail{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             nonNil(a.Genres),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		ImageLink:          a.ImageLink,
		AvailableFrom:      a.AvailableFrom,
		AvailableTill:      a.AvailableTill,
		PastShows:          make([]ShowDetail, 0, len(past)),
		UpcomingShows:      make([]ShowDetail, 0, len(upcoming)),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
	for _, s := range past {
		detail.PastShows = append(detail.PastShows, s.Detail())
	}
	for _, s := range upcoming {
		detail.UpcomingShows = append(detail.UpcomingShows, s.Detail())
	}
	return detail
}

// SearchResult is the response of a venue or artist search.
type SearchResult[T any] struct {
	Count      int    `json:"count"`
	Data       []T    `json:"data"`
	SearchTerm string `json:"search_term"`
}

// NewSearchResult wraps matches with their count.
func NewSearchResult[T any](term string, data []T) SearchResult[T] {
	if data == nil {
		data = []T{}
	}
	return SearchResult[T]{Count: len(data), Data: data, SearchTerm: term}
}
