package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discography/internal/models"
	"discography/internal/testutil"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFileSeedRepository_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ArtistsFile, `{
		"2": {"artistId": 2, "name": "Second"},
		"1": {"artistId": 1, "name": "First"}
	}`)
	writeFile(t, dir, AlbumsFile, `{"1": {"albumId": 1, "name": "Album", "artistId": 1}}`)
	writeFile(t, dir, SongsFile, `{
		"1": {"songId": 1, "name": "Song", "lyrics": null, "trackNumber": 3, "albumId": 1},
		"4": {"name": "Keyed only", "albumId": 1}
	}`)

	seed, err := NewFileSeedRepository(dir).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, seed.Artists, 2)
	assert.Equal(t, models.NewArtist(1, "First"), seed.Artists[0], "records are ordered by id")
	assert.Equal(t, models.NewArtist(2, "Second"), seed.Artists[1])

	require.Len(t, seed.Albums, 1)
	assert.Equal(t, models.NewAlbum(1, "Album", 1), seed.Albums[0])

	require.Len(t, seed.Songs, 2)
	assert.Nil(t, seed.Songs[0].Lyrics)
	require.NotNil(t, seed.Songs[0].TrackNumber)
	assert.Equal(t, 3, *seed.Songs[0].TrackNumber)
	assert.Equal(t, 4, seed.Songs[1].SongID, "id is taken from the key when the record has none")
}

func TestFileSeedRepository_MissingFilesAreEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ArtistsFile, `{"1": {"artistId": 1, "name": "Only"}}`)

	seed, err := NewFileSeedRepository(dir).Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, seed.Artists, 1)
	assert.Empty(t, seed.Albums)
	assert.Empty(t, seed.Songs)
}

func TestFileSeedRepository_InvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"1": `},
		{"array instead of object", `[{"artistId": 1, "name": "x"}]`},
		{"non-numeric key", `{"one": {"artistId": 1, "name": "x"}}`},
		{"key disagrees with id", `{"1": {"artistId": 2, "name": "x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, ArtistsFile, tt.content)

			_, err := NewFileSeedRepository(dir).Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSeed)
		})
	}
}

func TestWriteSeedFiles_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	seed := testutil.CreateTestSeed()

	require.NoError(t, WriteSeedFiles(dir, seed))

	loaded, err := NewFileSeedRepository(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seed, loaded)
}

func TestFileSeedRepository_ShippedSeeds(t *testing.T) {
	dir := filepath.Join("..", "..", "seeds")

	catalogue, err := LoadStore(context.Background(), NewFileSeedRepository(dir))
	require.NoError(t, err)

	assert.Equal(t, 2, catalogue.Artists.NextID())
	assert.Equal(t, 2, catalogue.Albums.NextID())
	assert.Equal(t, 2, catalogue.Songs.NextID())
}
