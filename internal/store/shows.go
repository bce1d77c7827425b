package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"fyyur/internal/models"
)

const showListingSelect = `
		SELECT sh.id, sh.start_time, sh.venue_id, sh.artist_id,
		       v.name, a.name, a.image_link
		FROM shows sh
		INNER JOIN venues v ON v.id = sh.venue_id
		INNER JOIN artists a ON a.id = sh.artist_id
`

// ListShows returns every show with its venue and artist names.
func (s *Store) ListShows(ctx context.Context) ([]models.ShowListing, error) {
	rows, err := s.db.QueryContext(ctx, showListingSelect+`
		ORDER BY sh.id ASC
	`)
	if err != nil {
		return nil, persistence("select shows", err)
	}
	defer rows.Close()

	return scanShowListings(rows)
}

// ListShowsByVenue returns the shows booked at a venue.
func (s *Store) ListShowsByVenue(ctx context.Context, venueID int64) ([]models.ShowListing, error) {
	rows, err := s.db.QueryContext(ctx, showListingSelect+`
		WHERE sh.venue_id = $1
		ORDER BY sh.start_time ASC
	`, venueID)
	if err != nil {
		return nil, persistence("select venue shows", err)
	}
	defer rows.Close()

	return scanShowListings(rows)
}

// ListShowsByArtist returns the shows an artist is booked for.
func (s *Store) ListShowsByArtist(ctx context.Context, artistID int64) ([]models.ShowListing, error) {
	rows, err := s.db.QueryContext(ctx, showListingSelect+`
		WHERE sh.artist_id = $1
		ORDER BY sh.start_time ASC
	`, artistID)
	if err != nil {
		return nil, persistence("select artist shows", err)
	}
	defer rows.Close()

	return scanShowListings(rows)
}

// CreateShow inserts a show. The caller is expected to have checked the
// artist's availability.
func (s *Store) CreateShow(ctx context.Context, show *models.Show) (*models.Show, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO shows (start_time, venue_id, artist_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, show.StartTime, show.VenueID, show.ArtistID).Scan(&show.ID)
		if err == nil {
			return nil
		}
		if isForeignKeyViolation(err) {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.ConstraintName == "shows_artist_id_fkey" {
				return ErrArtistNotFound
			}
			return ErrVenueNotFound
		}
		return persistence("insert show", err)
	})
	if err != nil {
		return nil, err
	}

	return show, nil
}

func scanShowListings(rows *sql.Rows) ([]models.ShowListing, error) {
	var shows []models.ShowListing
	for rows.Next() {
		var sh models.ShowListing
		if err := rows.Scan(
			&sh.ID, &sh.StartTime, &sh.VenueID, &sh.ArtistID,
			&sh.VenueName, &sh.ArtistName, &sh.ArtistImageLink,
		); err != nil {
			return nil, persistence("scan show", err)
		}
		sh.StartTime = models.WallClock(sh.StartTime)
		shows = append(shows, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("iterate shows", err)
	}
	return shows, nil
}
