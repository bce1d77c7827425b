package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"fyyur/internal/models"
)

// ResolveCity returns the city called cityName, creating it (and its state)
// when no city of that name exists.
//
// The lookup matches the city name exactly and case-sensitively, unlike the
// venue and artist searches which ignore case. When a city is found, its
// state is returned as stored and stateName is not checked against it.
func (s *Store) ResolveCity(ctx context.Context, cityName, stateName string) (models.City, error) {
	var city models.City
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		city, err = resolveCityTx(ctx, tx, cityName, stateName)
		return err
	})
	if err != nil {
		return models.City{}, err
	}
	return city, nil
}

func resolveCityTx(ctx context.Context, tx *sql.Tx, cityName, stateName string) (models.City, error) {
	cityName = strings.TrimSpace(cityName)
	stateName = strings.TrimSpace(stateName)

	var city models.City
	err := tx.QueryRowContext(ctx, `
		SELECT id, name, state_id
		FROM cities
		WHERE name = $1
		ORDER BY id ASC
		LIMIT 1
	`, cityName).Scan(&city.ID, &city.Name, &city.StateID)
	if err == nil {
		return city, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.City{}, persistence("lookup city", err)
	}

	stateID, err := getOrCreateState(ctx, tx, stateName)
	if err != nil {
		return models.City{}, err
	}

	// A concurrent request may create the same city between the lookup and
	// the insert; the unique (name, state_id) constraint turns that into a
	// no-op and the re-select picks up the winner's row.
	city = models.City{Name: cityName, StateID: stateID}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO cities (name, state_id)
		VALUES ($1, $2)
		ON CONFLICT (name, state_id) DO NOTHING
		RETURNING id
	`, cityName, stateID).Scan(&city.ID)
	if err == nil {
		return city, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.City{}, persistence("insert city", err)
	}

	if err := tx.QueryRowContext(ctx, `
		SELECT id
		FROM cities
		WHERE name = $1 AND state_id = $2
	`, cityName, stateID).Scan(&city.ID); err != nil {
		return models.City{}, persistence("reselect city", err)
	}
	return city, nil
}

func getOrCreateState(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		SELECT id
		FROM states
		WHERE name = $1
	`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, persistence("lookup state", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO states (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, persistence("insert state", err)
	}

	if err := tx.QueryRowContext(ctx, `
		SELECT id
		FROM states
		WHERE name = $1
	`, name).Scan(&id); err != nil {
		return 0, persistence("reselect state", err)
	}
	return id, nil
}

// ListCities returns every city with its state name.
func (s *Store) ListCities(ctx context.Context) ([]models.CityWithState, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.state_id, st.name
		FROM cities c
		INNER JOIN states st ON st.id = c.state_id
		ORDER BY c.id ASC
	`)
	if err != nil {
		return nil, persistence("select cities", err)
	}
	defer rows.Close()

	var cities []models.CityWithState
	for rows.Next() {
		var c models.CityWithState
		if err := rows.Scan(&c.ID, &c.Name, &c.StateID, &c.StateName); err != nil {
			return nil, persistence("scan city", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("iterate cities", err)
	}

	return cities, nil
}
