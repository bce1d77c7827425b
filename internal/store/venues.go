package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"fyyur/internal/models"
)

const venueSummarySelect = `
		SELECT v.id, v.name, v.city_id,
		       (SELECT COUNT(*)
		        FROM shows sh
		        WHERE sh.venue_id = v.id AND sh.start_time >= $1) AS num_upcoming_shows
		FROM venues v
`

// ListVenueSummaries returns the summary of every venue. Shows starting at
// or after now count as upcoming.
func (s *Store) ListVenueSummaries(ctx context.Context, now time.Time) ([]models.VenueSummary, error) {
	rows, err := s.db.QueryContext(ctx, venueSummarySelect+`
		ORDER BY v.id ASC
	`, now)
	if err != nil {
		return nil, persistence("select venues", err)
	}
	defer rows.Close()

	return scanVenueSummaries(rows)
}

// RecentVenues returns the most recently listed venues, newest first.
func (s *Store) RecentVenues(ctx context.Context, limit int, now time.Time) ([]models.VenueSummary, error) {
	rows, err := s.db.QueryContext(ctx, venueSummarySelect+`
		ORDER BY v.id DESC
		LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, persistence("select recent venues", err)
	}
	defer rows.Close()

	return scanVenueSummaries(rows)
}

// SearchVenues matches term, ignoring case, against the venue name, its
// city name, or its state name.
func (s *Store) SearchVenues(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error) {
	rows, err := s.db.QueryContext(ctx, venueSummarySelect+`
		WHERE v.name ILIKE $2
		   OR EXISTS (
		       SELECT 1
		       FROM cities c
		       INNER JOIN states st ON st.id = c.state_id
		       WHERE c.id = v.city_id
		         AND (c.name ILIKE $2 OR st.name ILIKE $2)
		   )
		ORDER BY v.id ASC
	`, now, likePattern(term))
	if err != nil {
		return nil, persistence("search venues", err)
	}
	defer rows.Close()

	return scanVenueSummaries(rows)
}

// GetVenue retrieves a single venue by ID with its city and state names.
func (s *Store) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	var v models.Venue
	err := s.db.QueryRowContext(ctx, `
		SELECT v.id, v.name, v.genres, v.city_id, v.address, v.phone, v.website,
		       v.facebook_link, v.image_link, v.seeking_talent, v.seeking_description,
		       c.name, st.name
		FROM venues v
		INNER JOIN cities c ON c.id = v.city_id
		INNER JOIN states st ON st.id = c.state_id
		WHERE v.id = $1
	`, id).Scan(
		&v.ID, &v.Name, pq.Array(&v.Genres), &v.CityID, &v.Address, &v.Phone, &v.Website,
		&v.FacebookLink, &v.ImageLink, &v.SeekingTalent, &v.SeekingDescription,
		&v.City, &v.State,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, persistence("select venue", err)
	}

	return &v, nil
}

// CreateVenue inserts a venue located in loc, resolving (or creating) its
// city in the same transaction.
func (s *Store) CreateVenue(ctx context.Context, venue *models.Venue, loc models.Location) (*models.Venue, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		city, err := resolveCityTx(ctx, tx, loc.City, loc.State)
		if err != nil {
			return err
		}
		venue.CityID = city.ID

		if err := tx.QueryRowContext(ctx, `
			INSERT INTO venues (name, genres, city_id, address, phone, website,
			                    facebook_link, image_link, seeking_talent, seeking_description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`, venue.Name, pq.Array(venue.Genres), venue.CityID, venue.Address, venue.Phone, venue.Website,
			venue.FacebookLink, venue.ImageLink, venue.SeekingTalent, venue.SeekingDescription,
		).Scan(&venue.ID); err != nil {
			return persistence("insert venue", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return venue, nil
}

// UpdateVenue replaces the editable fields of an existing venue.
func (s *Store) UpdateVenue(ctx context.Context, id int64, venue *models.Venue, loc models.Location) (*models.Venue, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		city, err := resolveCityTx(ctx, tx, loc.City, loc.State)
		if err != nil {
			return err
		}
		venue.CityID = city.ID

		result, err := tx.ExecContext(ctx, `
			UPDATE venues
			SET name = $1, genres = $2, city_id = $3, address = $4, phone = $5,
			    website = $6, facebook_link = $7, image_link = $8,
			    seeking_talent = $9, seeking_description = $10
			WHERE id = $11
		`, venue.Name, pq.Array(venue.Genres), venue.CityID, venue.Address, venue.Phone,
			venue.Website, venue.FacebookLink, venue.ImageLink,
			venue.SeekingTalent, venue.SeekingDescription, id)
		if err != nil {
			return persistence("update venue", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return persistence("update venue", err)
		}
		if rows == 0 {
			return ErrVenueNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	venue.ID = id
	return venue, nil
}

// DeleteVenue removes a venue. Venues with shows booked are kept and
// ErrVenueHasShows is returned.
func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var booked bool
		if err := tx.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM shows WHERE venue_id = $1)
		`, id).Scan(&booked); err != nil {
			return persistence("count venue shows", err)
		}
		if booked {
			return ErrVenueHasShows
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrVenueHasShows
			}
			return persistence("delete venue", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return persistence("delete venue", err)
		}
		if rows == 0 {
			return ErrVenueNotFound
		}
		return nil
	})
}

func scanVenueSummaries(rows *sql.Rows) ([]models.VenueSummary, error) {
	var venues []models.VenueSummary
	for rows.Next() {
		var v models.VenueSummary
		if err := rows.Scan(&v.ID, &v.Name, &v.CityID, &v.NumUpcomingShows); err != nil {
			return nil, persistence("scan venue", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("iterate venues", err)
	}
	return venues, nil
}

// likePattern builds a substring pattern for ILIKE with the wildcard
// characters of term matched literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(term)) + "%"
}
