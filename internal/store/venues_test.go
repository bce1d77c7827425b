package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"fyyur/internal/models"
)

func TestSearchVenuesUsesEscapedPattern(t *testing.T) {
	st, mock := newMockStore(t)
	now := wall(t, "2026-06-01 12:00:00")

	mock.ExpectQuery(`FROM venues v\s+WHERE v.name ILIKE \$2`).
		WithArgs(now, "%Hop%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city_id", "num_upcoming_shows"}).
			AddRow(int64(1), "The Musical Hop", int64(1), 0))

	venues, err := st.SearchVenues(context.Background(), "Hop", now)
	if err != nil {
		t.Fatalf("SearchVenues: %v", err)
	}
	if len(venues) != 1 || venues[0].Name != "The Musical Hop" || venues[0].CityID != 1 {
		t.Fatalf("unexpected venues: %#v", venues)
	}
}

func TestRecentVenuesLimitsNewestFirst(t *testing.T) {
	st, mock := newMockStore(t)
	now := wall(t, "2026-06-01 12:00:00")

	mock.ExpectQuery(`ORDER BY v.id DESC\s+LIMIT \$2`).
		WithArgs(now, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city_id", "num_upcoming_shows"}).
			AddRow(int64(3), "Park Square Live Music & Coffee", int64(1), 1).
			AddRow(int64(2), "The Dueling Pianos Bar", int64(2), 0))

	venues, err := st.RecentVenues(context.Background(), 10, now)
	if err != nil {
		t.Fatalf("RecentVenues: %v", err)
	}
	if len(venues) != 2 || venues[0].ID != 3 || venues[0].NumUpcomingShows != 1 {
		t.Fatalf("unexpected venues: %#v", venues)
	}
}

func TestGetVenueScansGenresAndLocation(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`FROM venues v\s+INNER JOIN cities c`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "genres", "city_id", "address", "phone", "website",
			"facebook_link", "image_link", "seeking_talent", "seeking_description",
			"city", "state",
		}).AddRow(
			int64(1), "The Musical Hop", "{Jazz,Reggae,Folk}", int64(1), "1015 Folsom Street", "+1 123-123-1234",
			"https://www.themusicalhop.com", "", "", true, "We are on the lookout",
			"San Francisco", "CA",
		))

	v, err := st.GetVenue(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetVenue: %v", err)
	}
	if len(v.Genres) != 3 || v.Genres[1] != "Reggae" {
		t.Fatalf("unexpected genres: %#v", v.Genres)
	}
	if v.City != "San Francisco" || v.State != "CA" || !v.SeekingTalent {
		t.Fatalf("unexpected venue: %#v", v)
	}
}

func TestGetVenueNotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`FROM venues v\s+INNER JOIN cities c`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := st.GetVenue(context.Background(), 99)
	if !errors.Is(err, ErrVenueNotFound) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}
}

func TestCreateVenueResolvesCityInSameTx(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lookupCitySQL).
		WithArgs("San Francisco").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "state_id"}).AddRow(int64(1), "San Francisco", int64(1)))
	mock.ExpectQuery(`INSERT INTO venues`).
		WithArgs("The Musical Hop", sqlmock.AnyArg(), int64(1), "1015 Folsom Street", "+1 123-123-1234",
			"", "", "", false, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	venue := &models.Venue{
		Name:    "The Musical Hop",
		Genres:  []string{"Jazz"},
		Address: "1015 Folsom Street",
		Phone:   "+1 123-123-1234",
	}
	created, err := st.CreateVenue(context.Background(), venue, models.Location{City: "San Francisco", State: "CA"})
	if err != nil {
		t.Fatalf("CreateVenue: %v", err)
	}
	if created.ID != 7 || created.CityID != 1 {
		t.Fatalf("unexpected venue: %#v", created)
	}
}

func TestCreateVenueRollsBackOnInsertFailure(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lookupCitySQL).
		WithArgs("San Francisco").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "state_id"}).AddRow(int64(1), "San Francisco", int64(1)))
	mock.ExpectQuery(`INSERT INTO venues`).
		WillReturnError(errors.New("value too long"))
	mock.ExpectRollback()

	_, err := st.CreateVenue(context.Background(), &models.Venue{Name: "x"}, models.Location{City: "San Francisco", State: "CA"})

	var pe *PersistenceError
	if !errors.As(err, &pe) || pe.Op != "insert venue" {
		t.Fatalf("expected insert venue PersistenceError, got %v", err)
	}
}

func TestUpdateVenueNotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lookupCitySQL).
		WithArgs("New York").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "state_id"}).AddRow(int64(2), "New York", int64(2)))
	mock.ExpectExec(`UPDATE venues`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := st.UpdateVenue(context.Background(), 42, &models.Venue{Name: "Gone"}, models.Location{City: "New York", State: "NY"})
	if !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}
}

func TestDeleteVenue(t *testing.T) {
	const existsSQL = `SELECT EXISTS \(SELECT 1 FROM shows WHERE venue_id = \$1\)`
	const deleteSQL = `DELETE FROM venues WHERE id = \$1`

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deletes venue without shows",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(existsSQL).WithArgs(int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec(deleteSQL).WithArgs(int64(2)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "rejects venue with shows",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(existsSQL).WithArgs(int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantErr: ErrVenueHasShows,
		},
		{
			name: "maps foreign key violation",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(existsSQL).WithArgs(int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec(deleteSQL).WithArgs(int64(2)).
					WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "shows_venue_id_fkey"})
				mock.ExpectRollback()
			},
			wantErr: ErrVenueHasShows,
		},
		{
			name: "missing venue",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(existsSQL).WithArgs(int64(2)).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec(deleteSQL).WithArgs(int64(2)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: ErrVenueNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st, mock := newMockStore(t)
			tc.setup(mock)

			err := st.DeleteVenue(context.Background(), 2)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
