package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"discography/internal/models"
	"discography/internal/store"
)

// Seed file names inside the seed directory
const (
	ArtistsFile = "artists.json"
	AlbumsFile  = "albums.json"
	SongsFile   = "songs.json"
)

// fileSeedRepository reads the seed from JSON files, each an object keyed by id
type fileSeedRepository struct {
	dir string
}

// NewFileSeedRepository creates a seed repository over the JSON files in dir
func NewFileSeedRepository(dir string) SeedRepository {
	return &fileSeedRepository{dir: dir}
}

// Load reads artists.json, albums.json and songs.json. A missing file is an
// empty collection.
func (r *fileSeedRepository) Load(ctx context.Context) (store.Seed, error) {
	var seed store.Seed
	var err error

	seed.Artists, err = readKeyed(filepath.Join(r.dir, ArtistsFile), func(a models.Artist, id int) models.Artist {
		a.ArtistID = id
		return a
	})
	if err != nil {
		return store.Seed{}, err
	}

	seed.Albums, err = readKeyed(filepath.Join(r.dir, AlbumsFile), func(a models.Album, id int) models.Album {
		a.AlbumID = id
		return a
	})
	if err != nil {
		return store.Seed{}, err
	}

	seed.Songs, err = readKeyed(filepath.Join(r.dir, SongsFile), func(s models.Song, id int) models.Song {
		s.SongID = id
		return s
	})
	if err != nil {
		return store.Seed{}, err
	}

	return seed, ctx.Err()
}

// readKeyed decodes a JSON object of id -> record. A record without its own id
// takes the key; a record whose id disagrees with its key is rejected.
func readKeyed[T store.Record](path string, withID func(T, int) T) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Seed file not found, starting empty", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var keyed map[string]T
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSeed, path, err)
	}

	records := make([]T, 0, len(keyed))
	for key, record := range keyed {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: key %q is not an id", ErrInvalidSeed, path, key)
		}

		switch record.ID() {
		case 0:
			record = withID(record, id)
		case id:
		default:
			return nil, fmt.Errorf("%w: %s: key %q holds id %d", ErrInvalidSeed, path, key, record.ID())
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID() < records[j].ID()
	})

	return records, nil
}

// WriteSeedFiles writes seed into dir in the layout fileSeedRepository reads
func WriteSeedFiles(dir string, seed store.Seed) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create seed directory: %w", err)
	}

	if err := writeKeyed(filepath.Join(dir, ArtistsFile), seed.Artists); err != nil {
		return err
	}
	if err := writeKeyed(filepath.Join(dir, AlbumsFile), seed.Albums); err != nil {
		return err
	}
	return writeKeyed(filepath.Join(dir, SongsFile), seed.Songs)
}

func writeKeyed[T store.Record](path string, records []T) error {
	keyed := make(map[string]T, len(records))
	for _, record := range records {
		keyed[strconv.Itoa(record.ID())] = record
	}

	data, err := json.MarshalIndent(keyed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
