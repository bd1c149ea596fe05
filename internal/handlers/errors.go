package handlers

import (
	"errors"
	"fmt"
)

// Entity names used in not-found messages
const (
	EntityArtist = "Artist"
	EntityAlbum  = "Album"
	EntitySong   = "Song"
)

// ErrUnprocessableBody marks a request whose body is missing a required field,
// holds a field of the wrong type, or could not be parsed at all
var ErrUnprocessableBody = errors.New("unprocessable request body")

// NotFoundError reports a referenced entity that does not exist
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func notFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func unprocessable(cause error) error {
	if cause == nil {
		return ErrUnprocessableBody
	}
	return fmt.Errorf("%w: %w", ErrUnprocessableBody, cause)
}
