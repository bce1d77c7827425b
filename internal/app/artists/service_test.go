package artists

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fyyur/internal/models"
	"fyyur/internal/store"
	"fyyur/internal/store/memstore"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return now }

func TestListAndSearch(t *testing.T) {
	ctx := context.Background()
	svc := New(memstore.New(), fixedNow)

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	for _, a := range []struct{ name, city, state string }{
		{"Guns N Petals", "San Francisco", "CA"},
		{"Matt Quevedo", "New York", "NY"},
		{"The Wild Sax Band", "San Francisco", "CA"},
	} {
		_, err := svc.Create(ctx, &models.Artist{Name: a.name}, models.Location{City: a.city, State: a.state})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	res, err := svc.Search(ctx, "A")
	require.NoError(t, err)
	require.Equal(t, 3, res.Count)

	res, err = svc.Search(ctx, "band")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Equal(t, "The Wild Sax Band", res.Data[0].Name)

	res, err = svc.Search(ctx, "new york")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Equal(t, "Matt Quevedo", res.Data[0].Name)
}

func TestDetailCarriesVenueOnShows(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	svc := New(st, fixedNow)

	artist, err := svc.Create(ctx, &models.Artist{Name: "The Wild Sax Band", AvailableFrom: 0, AvailableTill: 23}, models.Location{City: "San Francisco", State: "CA"})
	require.NoError(t, err)
	venue, err := st.CreateVenue(ctx, &models.Venue{Name: "Park Square Live Music & Coffee"}, models.Location{City: "San Francisco", State: "CA"})
	require.NoError(t, err)
	_, err = st.CreateShow(ctx, &models.Show{VenueID: venue.ID, ArtistID: artist.ID, StartTime: time.Date(2035, 4, 15, 20, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	detail, err := svc.Detail(ctx, artist.ID)
	require.NoError(t, err)
	require.Equal(t, 0, detail.PastShowsCount)
	require.Equal(t, 1, detail.UpcomingShowsCount)
	require.Equal(t, venue.ID, detail.UpcomingShows[0].VenueID)
	require.Equal(t, "Park Square Live Music & Coffee", detail.UpcomingShows[0].VenueName)

	summaries, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 1, summaries[0].NumUpcomingShows)
}

func TestMissingArtist(t *testing.T) {
	ctx := context.Background()
	svc := New(memstore.New(), fixedNow)

	_, err := svc.Detail(ctx, 1)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.Update(ctx, 1, &models.Artist{Name: "x"}, models.Location{City: "Reno", State: "NV"})
	require.ErrorIs(t, err, store.ErrArtistNotFound)
}
