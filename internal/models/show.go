package models

import (
	"fmt"
	"strings"
	"time"
)

// Show books one artist at one venue at one point in time.
type Show struct {
	ID        int64     `json:"id"`
	StartTime time.Time `json:"start_time"`
	VenueID   int64     `json:"venue_id"`
	ArtistID  int64     `json:"artist_id"`
}

// ShowListing is a Show joined with the venue and artist fields its views need.
type ShowListing struct {
	Show
	VenueName       string
	ArtistName      string
	ArtistImageLink string
}

// ShowSummary is the projection listed on a venue page.
type ShowSummary struct {
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ShowDetail extends ShowSummary with the venue it is booked at.
type ShowDetail struct {
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// Summary projects the listing to its summary view.
func (s ShowListing) Summary() ShowSummary {
	return ShowSummary{
		ArtistID:        s.ArtistID,
		ArtistName:      s.ArtistName,
		ArtistImageLink: s.ArtistImageLink,
		StartTime:       s.StartTime,
	}
}

// Detail projects the listing to its detail view.
func (s ShowListing) Detail() ShowDetail {
	return ShowDetail{
		VenueID:         s.VenueID,
		VenueName:       s.VenueName,
		ArtistID:        s.ArtistID,
		ArtistName:      s.ArtistName,
		ArtistImageLink: s.ArtistImageLink,
		StartTime:       s.StartTime,
	}
}

// PartitionShows splits shows into those starting before now and those
// starting at or after now. Every show lands in exactly one of the two.
func PartitionShows(shows []ShowListing, now time.Time) (past, upcoming []ShowListing) {
	past = []ShowListing{}
	upcoming = []ShowListing{}
	for _, s := range shows {
		if s.StartTime.Before(now) {
			past = append(past, s)
		} else {
			upcoming = append(upcoming, s)
		}
	}
	return past, upcoming
}

// WallClock drops the location of t while keeping its wall clock reading.
// Start times are stored without a time zone, so every time compared against
// them goes through here first.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Now returns the current local wall clock time.
func Now() time.Time {
	return WallClock(time.Now())
}

var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseStartTime parses a show start time as written, with no time zone
// conversion.
func ParseStartTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return WallClock(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised start time %q", raw)
}
