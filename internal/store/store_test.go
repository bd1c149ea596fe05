package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discography/internal/models"
)

func testSeed() Seed {
	return Seed{
		Artists: []models.Artist{
			models.NewArtist(1, "Red Hot Chili Peppers"),
		},
		Albums: []models.Album{
			models.NewAlbum(1, "Stadium Arcadium", 1),
		},
		Songs: []models.Song{
			models.NewSong(1, "Dani California", 1).WithTrackNumber(1),
		},
	}
}

func TestCollection_SeedSetsCounterAfterHighestID(t *testing.T) {
	c := NewCollection[models.Artist]()
	c.Seed([]models.Artist{
		models.NewArtist(4, "Four"),
		models.NewArtist(2, "Two"),
	})

	assert.Equal(t, 5, c.NextID())
	assert.Equal(t, 2, c.Len())

	names := []string{}
	for _, artist := range c.List() {
		names = append(names, artist.Name)
	}
	assert.Equal(t, []string{"Two", "Four"}, names)
}

func TestCollection_InsertIsMonotonic(t *testing.T) {
	c := NewCollection[models.Artist]()
	c.Seed([]models.Artist{models.NewArtist(1, "Seeded")})

	previous := 1
	for i := 0; i < 5; i++ {
		created := c.Insert(func(id int) models.Artist { return models.NewArtist(id, "Created") })
		assert.Greater(t, created.ArtistID, previous)
		previous = created.ArtistID
	}
}

func TestCollection_IDsAreNeverReused(t *testing.T) {
	c := NewCollection[models.Album]()

	first := c.Insert(func(id int) models.Album { return models.NewAlbum(id, "First", 1) })
	require.True(t, c.Delete(first.AlbumID))

	second := c.Insert(func(id int) models.Album { return models.NewAlbum(id, "Second", 1) })
	assert.Equal(t, first.AlbumID+1, second.AlbumID)
}

func TestCollection_GetAbsent(t *testing.T) {
	c := NewCollection[models.Song]()

	_, ok := c.Get(42)
	assert.False(t, ok)
	assert.False(t, c.Has(42))
}

func TestCollection_DeleteTwice(t *testing.T) {
	c := NewCollection[models.Song]()
	c.Seed([]models.Song{models.NewSong(1, "Song", 1)})

	assert.True(t, c.Delete(1))
	assert.False(t, c.Delete(1))
	assert.Empty(t, c.List())
}

func TestCollection_DeletePreservesOrder(t *testing.T) {
	c := NewCollection[models.Artist]()
	for _, name := range []string{"A", "B", "C"} {
		name := name
		c.Insert(func(id int) models.Artist { return models.NewArtist(id, name) })
	}

	require.True(t, c.Delete(2))

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "C", list[1].Name)
}

func TestCollection_Update(t *testing.T) {
	c := NewCollection[models.Artist]()
	c.Seed([]models.Artist{models.NewArtist(1, "Old")})

	updated, ok := c.Update(1, func(a *models.Artist) { a.Name = "New" })
	require.True(t, ok)
	assert.Equal(t, "New", updated.Name)

	stored, _ := c.Get(1)
	assert.Equal(t, "New", stored.Name)

	_, ok = c.Update(99, func(a *models.Artist) { a.Name = "Ghost" })
	assert.False(t, ok)
}

func TestCollection_ReturnedRecordsAreCopies(t *testing.T) {
	c := NewCollection[models.Artist]()
	c.Seed([]models.Artist{models.NewArtist(1, "Original")})

	artist, _ := c.Get(1)
	artist.Name = "Changed"

	stored, _ := c.Get(1)
	assert.Equal(t, "Original", stored.Name)
}

func TestCollection_ConcurrentInsertsAllocateUniqueIDs(t *testing.T) {
	c := NewCollection[models.Song]()

	const workers = 50
	ids := make(chan int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			song := c.Insert(func(id int) models.Song { return models.NewSong(id, "Song", 1) })
			ids <- song.SongID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
	assert.Equal(t, workers+1, c.NextID())
}

func TestStore_Joins(t *testing.T) {
	s := NewSeeded(testSeed())

	second := s.Albums.Insert(func(id int) models.Album { return models.NewAlbum(id, "By the Way", 1) })
	s.Songs.Insert(func(id int) models.Song { return models.NewSong(id, "Can't Stop", second.AlbumID).WithTrackNumber(1) })
	s.Songs.Insert(func(id int) models.Song { return models.NewSong(id, "Dosed", second.AlbumID).WithTrackNumber(4) })

	assert.Len(t, s.AlbumsByArtist(1), 2)
	assert.Empty(t, s.AlbumsByArtist(2))
	assert.Len(t, s.SongsByAlbum(second.AlbumID), 2)
	assert.Len(t, s.SongsByArtist(1), 3)
	assert.Len(t, s.SongsByTrackNumber(1), 2)
	assert.Len(t, s.SongsByTrackNumber(4), 1)
	assert.Empty(t, s.SongsByTrackNumber(9))
}

func TestStore_SongsByArtistSkipsOrphanedSongs(t *testing.T) {
	s := NewSeeded(testSeed())

	require.True(t, s.Albums.Delete(1))

	assert.Empty(t, s.SongsByArtist(1))
	assert.Len(t, s.SongsByAlbum(1), 1, "orphaned songs remain reachable by album id")
}
