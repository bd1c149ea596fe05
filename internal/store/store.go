// Package store holds the in-memory catalogue that every request reads and
// writes. It enforces no relationships between collections; foreign keys are
// checked by the handlers at creation time only.
package store

import "discography/internal/models"

// Store owns the artist, album and song collections
type Store struct {
	Artists *Collection[models.Artist]
	Albums  *Collection[models.Album]
	Songs   *Collection[models.Song]
}

// Seed is the initial content of a Store
type Seed struct {
	Artists []models.Artist
	Albums  []models.Album
	Songs   []models.Song
}

// New creates an empty store
func New() *Store {
	return &Store{
		Artists: NewCollection[models.Artist](),
		Albums:  NewCollection[models.Album](),
		Songs:   NewCollection[models.Song](),
	}
}

// NewSeeded creates a store pre-populated with seed
func NewSeeded(seed Seed) *Store {
	s := New()
	s.Artists.Seed(seed.Artists)
	s.Albums.Seed(seed.Albums)
	s.Songs.Seed(seed.Songs)
	return s
}

// AlbumsByArtist returns the albums whose artistId equals artistID
func (s *Store) AlbumsByArtist(artistID int) []models.Album {
	return s.Albums.Filter(func(album models.Album) bool {
		return album.ArtistID == artistID
	})
}

// SongsByAlbum returns the songs whose albumId equals albumID
func (s *Store) SongsByAlbum(albumID int) []models.Song {
	return s.Songs.Filter(func(song models.Song) bool {
		return song.AlbumID == albumID
	})
}

// SongsByArtist returns the songs on any existing album owned by artistID.
// Songs whose album has been deleted are skipped.
func (s *Store) SongsByArtist(artistID int) []models.Song {
	return s.Songs.Filter(func(song models.Song) bool {
		album, ok := s.Albums.Get(song.AlbumID)
		return ok && album.ArtistID == artistID
	})
}

// SongsByTrackNumber returns the songs with the given track number
func (s *Store) SongsByTrackNumber(trackNumber int) []models.Song {
	return s.Songs.Filter(func(song models.Song) bool {
		return song.HasTrackNumber(trackNumber)
	})
}
