package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"fyyur/internal/seed"
)

func bootstrapDemoData(ctx context.Context, st seed.Store) error {
	fixture, err := seed.Demo()
	if err != nil {
		return fmt.Errorf("bootstrap demo data: %w", err)
	}

	seeded, err := seed.Apply(ctx, st, fixture)
	if err != nil {
		return fmt.Errorf("bootstrap demo data: %w", err)
	}
	if seeded {
		log.Info().
			Int("venues", len(fixture.Venues)).
			Int("artists", len(fixture.Artists)).
			Int("shows", len(fixture.Shows)).
			Msg("demo data loaded")
	}
	return nil
}
