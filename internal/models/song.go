package models

import "time"

// TimestampLayout is the wire format for updatedAt (ISO-8601, UTC, milliseconds)
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Song represents a single track on an album
type Song struct {
	SongID int    `bson:"songId" json:"songId"`
	Name   string `bson:"name" json:"name"`

	// Nullable fields serialize as null rather than being omitted
	Lyrics      *string `bson:"lyrics" json:"lyrics"`
	TrackNumber *int    `bson:"trackNumber" json:"trackNumber"`

	AlbumID   int    `bson:"albumId" json:"albumId"`
	UpdatedAt string `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// NewSong creates a song that belongs to the given album
func NewSong(songID int, name string, albumID int) Song {
	return Song{
		SongID:  songID,
		Name:    name,
		AlbumID: albumID,
	}
}

// ID returns the song's primary key
func (s Song) ID() int {
	return s.SongID
}

// WithLyrics sets the lyrics field
func (s Song) WithLyrics(lyrics string) Song {
	s.Lyrics = &lyrics
	return s
}

// WithTrackNumber sets the track number field
func (s Song) WithTrackNumber(trackNumber int) Song {
	s.TrackNumber = &trackNumber
	return s
}

// HasTrackNumber reports whether the song sits at the given position on its album
func (s Song) HasTrackNumber(trackNumber int) bool {
	return s.TrackNumber != nil && *s.TrackNumber == trackNumber
}

// Touch stamps the song as edited at now
func (s *Song) Touch(now time.Time) {
	s.UpdatedAt = FormatTimestamp(now)
}
