// Package seed loads the demo directory used for local development.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"

	"fyyur/internal/models"
)

//go:embed demo.yaml
var demoFixture []byte

// Store is the subset of storage the seeder writes through.
type Store interface {
	ListVenueSummaries(ctx context.Context, now time.Time) ([]models.VenueSummary, error)
	CreateVenue(ctx context.Context, venue *models.Venue, loc models.Location) (*models.Venue, error)
	CreateArtist(ctx context.Context, artist *models.Artist, loc models.Location) (*models.Artist, error)
	CreateShow(ctx context.Context, show *models.Show) (*models.Show, error)
}

// Fixture is a directory described in YAML. Shows refer to venues and
// artists by key.
type Fixture struct {
	Venues  []VenueFixture  `yaml:"venues"`
	Artists []ArtistFixture `yaml:"artists"`
	Shows   []ShowFixture   `yaml:"shows"`
}

// VenueFixture describes one venue; Key names it for shows.
type VenueFixture struct {
	Key                string   `yaml:"key"`
	Name               string   `yaml:"name"`
	Genres             []string `yaml:"genres"`
	Address            string   `yaml:"address"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	Phone              string   `yaml:"phone"`
	Website            string   `yaml:"website"`
	FacebookLink       string   `yaml:"facebook_link"`
	ImageLink          string   `yaml:"image_link"`
	SeekingTalent      bool     `yaml:"seeking_talent"`
	SeekingDescription string   `yaml:"seeking_description"`
}

// ArtistFixture describes one artist. Omitted hours default to 0 and 23.
type ArtistFixture struct {
	Key                string   `yaml:"key"`
	Name               string   `yaml:"name"`
	Genres             []string `yaml:"genres"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	Phone              string   `yaml:"phone"`
	Website            string   `yaml:"website"`
	FacebookLink       string   `yaml:"facebook_link"`
	ImageLink          string   `yaml:"image_link"`
	SeekingVenue       bool     `yaml:"seeking_venue"`
	SeekingDescription string   `yaml:"seeking_description"`
	AvailableFrom      *int     `yaml:"available_from"`
	AvailableTill      *int     `yaml:"available_till"`
}

// ShowFixture books the artist with key Artist at the venue with key Venue.
type ShowFixture struct {
	Venue     string `yaml:"venue"`
	Artist    string `yaml:"artist"`
	StartTime string `yaml:"start_time"`
}

// Demo returns the bundled demo fixture.
func Demo() (Fixture, error) {
	return Parse(demoFixture)
}

// Parse decodes a YAML fixture.
func Parse(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

// Apply writes f through st unless st already lists venues. It reports
// whether anything was written.
func Apply(ctx context.Context, st Store, f Fixture) (bool, error) {
	existing, err := st.ListVenueSummaries(ctx, models.Now())
	if err != nil {
		return false, fmt.Errorf("check existing venues: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	venueIDs := make(map[string]int64, len(f.Venues))
	for _, v := range f.Venues {
		created, err := st.CreateVenue(ctx, &models.Venue{
			Name:               v.Name,
			Genres:             v.Genres,
			Address:            v.Address,
			Phone:              v.Phone,
			Website:            v.Website,
			FacebookLink:       v.FacebookLink,
			ImageLink:          v.ImageLink,
			SeekingTalent:      v.SeekingTalent,
			SeekingDescription: v.SeekingDescription,
		}, models.Location{City: v.City, State: v.State})
		if err != nil {
			return false, fmt.Errorf("seed venue %q: %w", v.Name, err)
		}
		venueIDs[v.Key] = created.ID
	}

	artistIDs := make(map[string]int64, len(f.Artists))
	for _, a := range f.Artists {
		artist := &models.Artist{
			Name:               a.Name,
			Genres:             a.Genres,
			Phone:              a.Phone,
			Website:            a.Website,
			FacebookLink:       a.FacebookLink,
			ImageLink:          a.ImageLink,
			SeekingVenue:       a.SeekingVenue,
			SeekingDescription: a.SeekingDescription,
			AvailableFrom:      models.DefaultAvailableFrom,
			AvailableTill:      models.DefaultAvailableTill,
		}
		if a.AvailableFrom != nil {
			artist.AvailableFrom = *a.AvailableFrom
		}
		if a.AvailableTill != nil {
			artist.AvailableTill = *a.AvailableTill
		}

		created, err := st.CreateArtist(ctx, artist, models.Location{City: a.City, State: a.State})
		if err != nil {
			return false, fmt.Errorf("seed artist %q: %w", a.Name, err)
		}
		artistIDs[a.Key] = created.ID
	}

	for _, s := range f.Shows {
		venueID, ok := venueIDs[s.Venue]
		if !ok {
			return false, fmt.Errorf("seed show: unknown venue key %q", s.Venue)
		}
		artistID, ok := artistIDs[s.Artist]
		if !ok {
			return false, fmt.Errorf("seed show: unknown artist key %q", s.Artist)
		}
		start, err := models.ParseStartTime(s.StartTime)
		if err != nil {
			return false, fmt.Errorf("seed show: %w", err)
		}

		if _, err := st.CreateShow(ctx, &models.Show{VenueID: venueID, ArtistID: artistID, StartTime: start}); err != nil {
			return false, fmt.Errorf("seed show at %s: %w", s.StartTime, err)
		}
	}

	return true, nil
}
