package testutil

import (
	"discography/internal/models"
	"discography/internal/store"
)

// Test data constants
const (
	TestArtistName = "Red Hot Chili Peppers"
	TestAlbumName  = "Stadium Arcadium"
	TestSongName   = "Dani California"
	TestLyrics     = "Getting born in the state of Mississippi"
)

// SeedBuilder provides a fluent interface for creating store seeds
type SeedBuilder struct {
	seed store.Seed
}

// NewSeedBuilder creates an empty seed builder
func NewSeedBuilder() *SeedBuilder {
	return &SeedBuilder{}
}

// WithArtist adds an artist
func (b *SeedBuilder) WithArtist(artistID int, name string) *SeedBuilder {
	b.seed.Artists = append(b.seed.Artists, models.NewArtist(artistID, name))
	return b
}

// WithAlbum adds an album owned by artistID
func (b *SeedBuilder) WithAlbum(albumID int, name string, artistID int) *SeedBuilder {
	b.seed.Albums = append(b.seed.Albums, models.NewAlbum(albumID, name, artistID))
	return b
}

// WithSong adds a song
func (b *SeedBuilder) WithSong(song models.Song) *SeedBuilder {
	b.seed.Songs = append(b.seed.Songs, song)
	return b
}

// Build returns the seed
func (b *SeedBuilder) Build() store.Seed {
	return b.seed
}

// Store builds a store from the seed
func (b *SeedBuilder) Store() *store.Store {
	return store.NewSeeded(b.seed)
}

// CreateTestSeed returns one artist with one album holding one song, all with id 1
func CreateTestSeed() store.Seed {
	return NewSeedBuilder().
		WithArtist(1, TestArtistName).
		WithAlbum(1, TestAlbumName, 1).
		WithSong(models.NewSong(1, TestSongName, 1).WithLyrics(TestLyrics).WithTrackNumber(1)).
		Build()
}

// CreateTestStore returns a store seeded with CreateTestSeed
func CreateTestStore() *store.Store {
	return store.NewSeeded(CreateTestSeed())
}
