package shows

import (
	"context"
	"errors"

	"fyyur/internal/models"
)

// ErrBookingConflict rejects a show outside the artist's availability.
var ErrBookingConflict = errors.New("artist is not available at this time")

// Store defines persistence operations for shows
type Store interface {
	ListShows(ctx context.Context) ([]models.ShowListing, error)
	CreateShow(ctx context.Context, show *models.Show) (*models.Show, error)
}

// ArtistLookup loads the artist whose availability gates a booking
type ArtistLookup interface {
	GetArtist(ctx context.Context, id int64) (*models.Artist, error)
}

// VenueLookup allows validating that venues exist before booking
type VenueLookup interface {
	GetVenue(ctx context.Context, id int64) (*models.Venue, error)
}

// Service coordinates show-related operations
type Service interface {
	List(ctx context.Context) ([]models.ShowDetail, error)
	Create(ctx context.Context, show *models.Show) (*models.Show, error)
}

type service struct {
	store   Store
	artists ArtistLookup
	venues  VenueLookup
}

// New constructs a shows Service
func New(store Store, artists ArtistLookup, venues VenueLookup) Service {
	return &service{store: store, artists: artists, venues: venues}
}

func (s *service) List(ctx context.Context) ([]models.ShowDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	listings, err := s.store.ListShows(ctx)
	if err != nil {
		return nil, err
	}

	shows := make([]models.ShowDetail, 0, len(listings))
	for _, l := range listings {
		shows = append(shows, l.Detail())
	}
	return shows, nil
}

// Create books a show. Nothing is written when the artist or venue is
// missing or the start time is outside the artist's availability.
func (s *service) Create(ctx context.Context, show *models.Show) (*models.Show, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artist, err := s.artists.GetArtist(ctx, show.ArtistID)
	if err != nil {
		return nil, err
	}
	if _, err := s.venues.GetVenue(ctx, show.VenueID); err != nil {
		return nil, err
	}

	show.StartTime = models.WallClock(show.StartTime)
	if !IsBookableTime(*artist, show.StartTime) {
		return nil, ErrBookingConflict
	}

	return s.store.CreateShow(ctx, show)
}
