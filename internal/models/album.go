package models

import "time"

// Album groups songs and belongs to exactly one artist
type Album struct {
	AlbumID   int    `bson:"albumId" json:"albumId"`
	Name      string `bson:"name" json:"name"`
	ArtistID  int    `bson:"artistId" json:"artistId"`
	UpdatedAt string `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// NewAlbum creates an album owned by artistID
func NewAlbum(albumID int, name string, artistID int) Album {
	return Album{AlbumID: albumID, Name: name, ArtistID: artistID}
}

// ID returns the album's primary key
func (a Album) ID() int {
	return a.AlbumID
}

// Touch stamps the album as edited at now
func (a *Album) Touch(now time.Time) {
	a.UpdatedAt = FormatTimestamp(now)
}
