package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"fyyur/internal/models"
)

const artistSummarySelect = `
		SELECT a.id, a.name,
		       (SELECT COUNT(*)
		        FROM shows sh
		        WHERE sh.artist_id = a.id AND sh.start_time >= $1) AS num_upcoming_shows
		FROM artists a
`

// ListArtistSummaries returns the summary of every artist.
func (s *Store) ListArtistSummaries(ctx context.Context, now time.Time) ([]models.ArtistSummary, error) {
	rows, err := s.db.QueryContext(ctx, artistSummarySelect+`
		ORDER BY a.id ASC
	`, now)
	if err != nil {
		return nil, persistence("select artists", err)
	}
	defer rows.Close()

	return scanArtistSummaries(rows)
}

// RecentArtists returns the most recently listed artists, newest first.
func (s *Store) RecentArtists(ctx context.Context, limit int, now time.Time) ([]models.ArtistSummary, error) {
	rows, err := s.db.QueryContext(ctx, artistSummarySelect+`
		ORDER BY a.id DESC
		LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, persistence("select recent artists", err)
	}
	defer rows.Close()

	return scanArtistSummaries(rows)
}

// SearchArtists matches term, ignoring case, against the artist name, its
// city name, or its state name.
func (s *Store) SearchArtists(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error) {
	rows, err := s.db.QueryContext(ctx, artistSummarySelect+`
		WHERE a.name ILIKE $2
		   OR EXISTS (
		       SELECT 1
		       FROM cities c
		       INNER JOIN states st ON st.id = c.state_id
		       WHERE c.id = a.city_id
		         AND (c.name ILIKE $2 OR st.name ILIKE $2)
		   )
		ORDER BY a.id ASC
	`, now, likePattern(term))
	if err != nil {
		return nil, persistence("search artists", err)
	}
	defer rows.Close()

	return scanArtistSummaries(rows)
}

// GetArtist retrieves a single artist by ID with its city and state names.
func (s *Store) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	var a models.Artist
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.name, a.city_id, a.phone, a.website, a.genres, a.image_link,
		       a.facebook_link, a.seeking_venue, a.seeking_description,
		       a.available_from, a.available_till,
		       c.name, st.name
		FROM artists a
		INNER JOIN cities c ON c.id = a.city_id
		INNER JOIN states st ON st.id = c.state_id
		WHERE a.id = $1
	`, id).Scan(
		&a.ID, &a.Name, &a.CityID, &a.Phone, &a.Website, pq.Array(&a.Genres), &a.ImageLink,
		&a.FacebookLink, &a.SeekingVenue, &a.SeekingDescription,
		&a.AvailableFrom, &a.AvailableTill,
		&a.City, &a.State,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, persistence("select artist", err)
	}

	return &a, nil
}

// CreateArtist inserts an artist located in loc, resolving (or creating) its
// city in the same transaction.
func (s *Store) CreateArtist(ctx context.Context, artist *models.Artist, loc models.Location) (*models.Artist, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		city, err := resolveCityTx(ctx, tx, loc.City, loc.State)
		if err != nil {
			return err
		}
		artist.CityID = city.ID

		if err := tx.QueryRowContext(ctx, `
			INSERT INTO artists (name, city_id, phone, website, genres, image_link,
			                     facebook_link, seeking_venue, seeking_description,
			                     available_from, available_till)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id
		`, artist.Name, artist.CityID, artist.Phone, artist.Website, pq.Array(artist.Genres), artist.ImageLink,
			artist.FacebookLink, artist.SeekingVenue, artist.SeekingDescription,
			artist.AvailableFrom, artist.AvailableTill,
		).Scan(&artist.ID); err != nil {
			return persistence("insert artist", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return artist, nil
}

// UpdateArtist replaces the editable fields of an existing artist.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist *models.Artist, loc models.Location) (*models.Artist, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		city, err := resolveCityTx(ctx, tx, loc.City, loc.State)
		if err != nil {
			return err
		}
		artist.CityID = city.ID

		result, err := tx.ExecContext(ctx, `
			UPDATE artists
			SET name = $1, city_id = $2, phone = $3, website = $4, genres = $5,
			    image_link = $6, facebook_link = $7, seeking_venue = $8,
			    seeking_description = $9, available_from = $10, available_till = $11
			WHERE id = $12
		`, artist.Name, artist.CityID, artist.Phone, artist.Website, pq.Array(artist.Genres),
			artist.ImageLink, artist.FacebookLink, artist.SeekingVenue,
			artist.SeekingDescription, artist.AvailableFrom, artist.AvailableTill, id)
		if err != nil {
			return persistence("update artist", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return persistence("update artist", err)
		}
		if rows == 0 {
			return ErrArtistNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	artist.ID = id
	return artist, nil
}

func scanArtistSummaries(rows *sql.Rows) ([]models.ArtistSummary, error) {
	var artists []models.ArtistSummary
	for rows.Next() {
		var a models.ArtistSummary
		if err := rows.Scan(&a.ID, &a.Name, &a.NumUpcomingShows); err != nil {
			return nil, persistence("scan artist", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("iterate artists", err)
	}
	return artists, nil
}
