package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fyyur/internal/models"
	"fyyur/internal/store/memstore"
)

func TestDemoFixtureIsValid(t *testing.T) {
	f, err := Demo()
	require.NoError(t, err)
	require.Len(t, f.Venues, 3)
	require.Len(t, f.Artists, 3)
	require.Len(t, f.Shows, 5)

	for _, v := range f.Venues {
		require.True(t, models.IsValidState(v.State), v.Name)
		for _, g := range v.Genres {
			require.True(t, models.IsValidGenre(g), "%s: %s", v.Name, g)
		}
	}
	for _, a := range f.Artists {
		require.True(t, models.IsValidState(a.State), a.Name)
		require.NotNil(t, a.AvailableFrom, a.Name)
	}
	require.Equal(t, "+1 123-123-1234", f.Venues[0].Phone)
	require.Equal(t, []string{"Classical", "R&B", "Hip-Hop"}, f.Venues[1].Genres)
}

func TestApplySeedsOnce(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	f, err := Demo()
	require.NoError(t, err)

	seeded, err := Apply(ctx, st, f)
	require.NoError(t, err)
	require.True(t, seeded)

	seeded, err = Apply(ctx, st, f)
	require.NoError(t, err)
	require.False(t, seeded)

	cities, err := st.ListCities(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 2)

	shows, err := st.ListShows(ctx)
	require.NoError(t, err)
	require.Len(t, shows, 5)

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	venues, err := st.SearchVenues(ctx, "Park Square", now)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	require.Equal(t, 3, venues[0].NumUpcomingShows)
}

func TestApplyRejectsUnknownKeys(t *testing.T) {
	f, err := Parse([]byte(`
venues:
  - key: hall
    name: Hall
    city: Reno
    state: NV
shows:
  - venue: hall
    artist: nobody
    start_time: "2035-01-01 20:00:00"
`))
	require.NoError(t, err)

	_, err = Apply(context.Background(), memstore.New(), f)
	require.ErrorContains(t, err, `unknown artist key "nobody"`)
}
