package artists

import (
	"context"
	"time"

	"fyyur/internal/models"
)

// Store defines persistence operations for artists
type Store interface {
	ListArtistSummaries(ctx context.Context, now time.Time) ([]models.ArtistSummary, error)
	RecentArtists(ctx context.Context, limit int, now time.Time) ([]models.ArtistSummary, error)
	SearchArtists(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error)
	GetArtist(ctx context.Context, id int64) (*models.Artist, error)
	ListShowsByArtist(ctx context.Context, artistID int64) ([]models.ShowListing, error)
	CreateArtist(ctx context.Context, artist *models.Artist, loc models.Location) (*models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, artist *models.Artist, loc models.Location) (*models.Artist, error)
}

// Service coordinates artist-related operations
type Service interface {
	List(ctx context.Context) ([]models.ArtistSummary, error)
	Recent(ctx context.Context, limit int) ([]models.ArtistSummary, error)
	Search(ctx context.Context, term string) (models.SearchResult[models.ArtistSummary], error)
	Detail(ctx context.Context, id int64) (models.ArtistDetail, error)
	Create(ctx context.Context, artist *models.Artist, loc models.Location) (*models.Artist, error)
	Update(ctx context.Context, id int64, artist *models.Artist, loc models.Location) (models.ArtistDetail, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs an artists Service. A nil now uses models.Now.
func New(store Store, now func() time.Time) Service {
	if now == nil {
		now = models.Now
	}
	return &service{store: store, now: now}
}

func (s *service) List(ctx context.Context) ([]models.ArtistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artists, err := s.store.ListArtistSummaries(ctx, s.now())
	if err != nil {
		return nil, err
	}
	if artists == nil {
		artists = []models.ArtistSummary{}
	}
	return artists, nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]models.ArtistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.RecentArtists(ctx, limit, s.now())
}

func (s *service) Search(ctx context.Context, term string) (models.SearchResult[models.ArtistSummary], error) {
	if err := ctx.Err(); err != nil {
		return models.SearchResult[models.ArtistSummary]{}, err
	}

	artists, err := s.store.SearchArtists(ctx, term, s.now())
	if err != nil {
		return models.SearchResult[models.ArtistSummary]{}, err
	}
	return models.NewSearchResult(term, artists), nil
}

func (s *service) Detail(ctx context.Context, id int64) (models.ArtistDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.ArtistDetail{}, err
	}

	artist, err := s.store.GetArtist(ctx, id)
	if err != nil {
		return models.ArtistDetail{}, err
	}
	shows, err := s.store.ListShowsByArtist(ctx, id)
	if err != nil {
		return models.ArtistDetail{}, err
	}

	return models.NewArtistDetail(*artist, shows, s.now()), nil
}

func (s *service) Create(ctx context.Context, artist *models.Artist, loc models.Location) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateArtist(ctx, artist, loc)
}

func (s *service) Update(ctx context.Context, id int64, artist *models.Artist, loc models.Location) (models.ArtistDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.ArtistDetail{}, err
	}

	if _, err := s.store.UpdateArtist(ctx, id, artist, loc); err != nil {
		return models.ArtistDetail{}, err
	}
	return s.Detail(ctx, id)
}
