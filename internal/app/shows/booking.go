package shows

import (
	"time"

	"fyyur/internal/models"
)

// IsBookableTime reports whether startTime falls inside the artist's daily
// availability window. Both bounds are inclusive hours of the wall clock.
// A window whose start is after its end matches nothing; it does not wrap
// around midnight.
func IsBookableTime(artist models.Artist, startTime time.Time) bool {
	hour := startTime.Hour()
	return artist.AvailableFrom <= hour && hour <= artist.AvailableTill
}
