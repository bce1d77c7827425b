package venues

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

func TestListGroupedByCityIncludesEmptyCities(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	svc := New(st, fixedNow)

	_, err := svc.Create(ctx, &models.Venue{Name: "The Musical Hop"}, models.Location{City: "San Francisco", State: "CA"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.Venue{Name: "The Dueling Pianos Bar"}, models.Location{City: "New York", State: "NY"})
	require.NoError(t, err)
	_, err = st.ResolveCity(ctx, "Springfield", "IL")
	require.NoError(t, err)

	groups, err := svc.ListGroupedByCity(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	require.Equal(t, "San Francisco", groups[0].City)
	require.Len(t, groups[0].Venues, 1)
	require.Equal(t, "Springfield", groups[2].City)
	require.NotNil(t, groups[2].Venues)
	require.Empty(t, groups[2].Venues)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	svc := New(memstore.New(), fixedNow)

	for _, v := range []struct{ name, city, state string }{
		{"The Musical Hop", "San Francisco", "CA"},
		{"The Dueling Pianos Bar", "New York", "NY"},
		{"Park Square Live Music & Coffee", "San Francisco", "CA"},
	} {
		_, err := svc.Create(ctx, &models.Venue{Name: v.name}, models.Location{City: v.city, State: v.state})
		require.NoError(t, err)
	}

	hop, err := svc.Search(ctx, "Hop")
	require.NoError(t, err)
	require.Equal(t, 1, hop.Count)
	require.Equal(t, "The Musical Hop", hop.Data[0].Name)
	require.Equal(t, "Hop", hop.SearchTerm)

	music, err := svc.Search(ctx, "Music")
	require.NoError(t, err)
	require.Equal(t, 2, music.Count)

	for _, term := range []string{"hop", "HOP"} {
		res, err := svc.Search(ctx, term)
		require.NoError(t, err)
		require.Equal(t, 1, res.Count, term)
	}

	none, err := svc.Search(ctx, "zzz")
	require.NoError(t, err)
	require.Equal(t, 0, none.Count)
	require.NotNil(t, none.Data)
}

func TestDetailPartitionsShows(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	svc := New(st, fixedNow)

	venue, err := svc.Create(ctx, &models.Venue{Name: "The Musical Hop", Genres: []string{"Jazz"}}, models.Location{City: "San Francisco", State: "CA"})
	require.NoError(t, err)
	artist, err := st.CreateArtist(ctx, &models.Artist{Name: "Guns N Petals", AvailableTill: 23}, models.Location{City: "San Francisco", State: "CA"})
	require.NoError(t, err)

	for _, start := range []time.Time{
		time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC),
		time.Date(2019, 6, 15, 23, 0, 0, 0, time.UTC),
		time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC),
	} {
		_, err := st.CreateShow(ctx, &models.Show{VenueID: venue.ID, ArtistID: artist.ID, StartTime: start})
		require.NoError(t, err)
	}

	detail, err := svc.Detail(ctx, venue.ID)
	require.NoError(t, err)
	require.Equal(t, 2, detail.PastShowsCount)
	require.Equal(t, 1, detail.UpcomingShowsCount)
	require.Len(t, detail.PastShows, 2)
	require.Len(t, detail.UpcomingShows, 1)
	require.Equal(t, "San Francisco", detail.City)
	require.Equal(t, "CA", detail.State)
	require.Equal(t, "Guns N Petals", detail.UpcomingShows[0].ArtistName)
}

func TestDeleteThenNotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(memstore.New(), fixedNow)

	venue, err := svc.Create(ctx, &models.Venue{Name: "Closing Down"}, models.Location{City: "Reno", State: "NV"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, venue.ID))

	_, err = svc.Detail(ctx, venue.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateReturnsFreshDetail(t *testing.T) {
	ctx := context.Background()
	svc := New(memstore.New(), fixedNow)

	venue, err := svc.Create(ctx, &models.Venue{Name: "Old Name"}, models.Location{City: "Reno", State: "NV"})
	require.NoError(t, err)

	detail, err := svc.Update(ctx, venue.ID, &models.Venue{Name: "New Name", Phone: "+1 555-0100"}, models.Location{City: "Austin", State: "TX"})
	require.NoError(t, err)
	require.Equal(t, "New Name", detail.Name)
	require.Equal(t, "Austin", detail.City)
	require.Equal(t, "TX", detail.State)

	_, err = svc.Update(ctx, 999, &models.Venue{Name: "Ghost"}, models.Location{City: "Austin", State: "TX"})
	require.ErrorIs(t, err, store.ErrVenueNotFound)
}
