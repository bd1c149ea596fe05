package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"discography/internal/store"
)

// ErrInvalidSeed marks seed data that cannot be loaded into the store
var ErrInvalidSeed = errors.New("invalid seed data")

// SeedRepository defines where the initial catalogue comes from
type SeedRepository interface {
	Load(ctx context.Context) (store.Seed, error)
}

// SeedWriter replaces the seed held by a repository
type SeedWriter interface {
	Replace(ctx context.Context, seed store.Seed) error
}

// LoadStore loads the seed from repo and builds the in-memory store from it
func LoadStore(ctx context.Context, repo SeedRepository) (*store.Store, error) {
	seed, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed: %w", err)
	}

	if err := validateSeed(seed); err != nil {
		return nil, err
	}

	catalogue := store.NewSeeded(seed)
	slog.Info("Seed loaded",
		"artists", catalogue.Artists.Len(),
		"albums", catalogue.Albums.Len(),
		"songs", catalogue.Songs.Len())

	return catalogue, nil
}

// validateSeed rejects duplicate and non-positive ids. Dangling references are
// allowed; the store tolerates them.
func validateSeed(seed store.Seed) error {
	if err := checkIDs("artist", seed.Artists); err != nil {
		return err
	}
	if err := checkIDs("album", seed.Albums); err != nil {
		return err
	}
	return checkIDs("song", seed.Songs)
}

func checkIDs[T store.Record](entity string, records []T) error {
	seen := make(map[int]struct{}, len(records))
	for _, record := range records {
		id := record.ID()
		if id <= 0 {
			return fmt.Errorf("%w: %s id %d is not positive", ErrInvalidSeed, entity, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate %s id %d", ErrInvalidSeed, entity, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
