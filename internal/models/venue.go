package models

import "time"

// Venue represents a music venue that hosts shows.
type Venue struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	CityID             int64    `json:"city_id"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	ImageLink          string   `json:"image_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`

	// Populated via JOIN queries (not stored in venues table)
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// VenueSummary is the projection used by venue listings and search results.
type VenueSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
	CityID           int64  `json:"-"`
}

// VenueDetail is the full projection of a venue and its shows.
type VenueDetail struct {
	ID                 int64         `json:"id"`
	Name               string        `json:"name"`
	Genres             []string      `json:"genres"`
	Address            string        `json:"address"`
	City               string        `json:"city"`
	State              string        `json:"state"`
	Phone              string        `json:"phone"`
	Website            string        `json:"website"`
	FacebookLink       string        `json:"facebook_link"`
	SeekingTalent      bool          `json:"seeking_talent"`
	SeekingDescription string        `json:"seeking_description"`
	ImageLink          string        `json:"image_link"`
	PastShows          []ShowSummary `json:"past_shows"`
	UpcomingShows      []ShowSummary `json:"upcoming_shows"`
	PastShowsCount     int           `json:"past_shows_count"`
	UpcomingShowsCount int           `json:"upcoming_shows_count"`
}

// NewVenueDetail builds the detail view of v from the shows booked there.
func NewVenueDetail(v Venue, shows []ShowListing, now time.Time) VenueDetail {
	past, upcoming := PartitionShows(shows, now)

	detail := VenueDetail{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             nonNil(v.Genres),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		ImageLink:          v.ImageLink,
		PastShows:          make([]ShowSummary, 0, len(past)),
		UpcomingShows:      make([]ShowSummary, 0, len(upcoming)),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
	for _, s := range past {
		detail.PastShows = append(detail.PastShows, s.Summary())
	}
	for _, s := range upcoming {
		detail.UpcomingShows = append(detail.UpcomingShows, s.Summary())
	}
	return detail
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
