package models

import "time"

// Artist is the root of the catalogue hierarchy
type Artist struct {
	ArtistID  int    `bson:"artistId" json:"artistId"`
	Name      string `bson:"name" json:"name"`
	UpdatedAt string `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// NewArtist creates an artist with the given id and name
func NewArtist(artistID int, name string) Artist {
	return Artist{ArtistID: artistID, Name: name}
}

// ID returns the artist's primary key
func (a Artist) ID() int {
	return a.ArtistID
}

// Touch stamps the artist as edited at now
func (a *Artist) Touch(now time.Time) {
	a.UpdatedAt = FormatTimestamp(now)
}
