package venues

import (
	"context"
	"time"

	"fyyur/internal/models"
)

// Store defines persistence operations for venues
type Store interface {
	ListCities(ctx context.Context) ([]models.CityWithState, error)
	ListVenueSummaries(ctx context.Context, now time.Time) ([]models.VenueSummary, error)
	RecentVenues(ctx context.Context, limit int, now time.Time) ([]models.VenueSummary, error)
	SearchVenues(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error)
	GetVenue(ctx context.Context, id int64) (*models.Venue, error)
	ListShowsByVenue(ctx context.Context, venueID int64) ([]models.ShowListing, error)
	CreateVenue(ctx context.Context, venue *models.Venue, loc models.Location) (*models.Venue, error)
	UpdateVenue(ctx context.Context, id int64, venue *models.Venue, loc models.Location) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error
}

// Service coordinates venue-related operations
type Service interface {
	ListGroupedByCity(ctx context.Context) ([]models.CityVenues, error)
	Recent(ctx context.Context, limit int) ([]models.VenueSummary, error)
	Search(ctx context.Context, term string) (models.SearchResult[models.VenueSummary], error)
	Detail(ctx context.Context, id int64) (models.VenueDetail, error)
	Create(ctx context.Context, venue *models.Venue, loc models.Location) (*models.Venue, error)
	Update(ctx context.Context, id int64, venue *models.Venue, loc models.Location) (models.VenueDetail, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs a venues Service. now supplies the wall clock that splits
// past from upcoming shows; nil uses models.Now.
func New(store Store, now func() time.Time) Service {
	if now == nil {
		now = models.Now
	}
	return &service{store: store, now: now}
}

func (s *service) ListGroupedByCity(ctx context.Context) ([]models.CityVenues, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cities, err := s.store.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	venues, err := s.store.ListVenueSummaries(ctx, s.now())
	if err != nil {
		return nil, err
	}

	return models.GroupVenuesByCity(cities, venues), nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]models.VenueSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.RecentVenues(ctx, limit, s.now())
}

func (s *service) Search(ctx context.Context, term string) (models.SearchResult[models.VenueSummary], error) {
	if err := ctx.Err(); err != nil {
		return models.SearchResult[models.VenueSummary]{}, err
	}

	venues, err := s.store.SearchVenues(ctx, term, s.now())
	if err != nil {
		return models.SearchResult[models.VenueSummary]{}, err
	}
	return models.NewSearchResult(term, venues), nil
}

func (s *service) Detail(ctx context.Context, id int64) (models.VenueDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.VenueDetail{}, err
	}

	venue, err := s.store.GetVenue(ctx, id)
	if err != nil {
		return models.VenueDetail{}, err
	}
	shows, err := s.store.ListShowsByVenue(ctx, id)
	if err != nil {
		return models.VenueDetail{}, err
	}

	return models.NewVenueDetail(*venue, shows, s.now()), nil
}

func (s *service) Create(ctx context.Context, venue *models.Venue, loc models.Location) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateVenue(ctx, venue, loc)
}

// Update applies the edit and returns the venue as it now reads.
func (s *service) Update(ctx context.Context, id int64, venue *models.Venue, loc models.Location) (models.VenueDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.VenueDetail{}, err
	}

	if _, err := s.store.UpdateVenue(ctx, id, venue, loc); err != nil {
		return models.VenueDetail{}, err
	}
	return s.Detail(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteVenue(ctx, id)
}
