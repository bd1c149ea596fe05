package handlers

import (
	"net/http"
	"strconv"
	"time"

	"discography/internal/handlers/render"
	"discography/internal/models"
	"discography/internal/payload"
	"discography/internal/router"
	"discography/internal/store"
)

// DeletedMessage is returned after any successful delete
const DeletedMessage = "Successfully deleted"

// Request is what an operation sees of an incoming HTTP request
type Request struct {
	Params     router.Params
	Payload    payload.Payload
	PayloadErr error
}

// Response is what an operation hands back to the response writer
type Response struct {
	StatusCode int
	Body       interface{}
}

// OperationFunc implements one routed operation
type OperationFunc func(req *Request) (*Response, error)

// ArtistDetail is an artist with its albums inlined
type ArtistDetail struct {
	models.Artist
	Albums []models.Album `json:"albums"`
}

// AlbumDetail is an album with its artist and songs inlined
type AlbumDetail struct {
	models.Album
	Artist *models.Artist `json:"artist,omitempty"`
	Songs  []models.Song  `json:"songs"`
}

// SongDetail is a song with its album and artist inlined
type SongDetail struct {
	models.Song
	Album  *models.Album  `json:"album,omitempty"`
	Artist *models.Artist `json:"artist,omitempty"`
}

// ResourceHandler implements the artist, album and song operations against a store
type ResourceHandler struct {
	store *store.Store
	now   func() time.Time
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(catalogue *store.Store) *ResourceHandler {
	return &ResourceHandler{
		store: catalogue,
		now:   time.Now,
	}
}

// WithClock replaces the time source used for updatedAt
func (h *ResourceHandler) WithClock(now func() time.Time) *ResourceHandler {
	h.now = now
	return h
}

// Operations maps every routed operation to its implementation
func (h *ResourceHandler) Operations() map[router.Operation]OperationFunc {
	return map[router.Operation]OperationFunc{
		router.OpListArtists:          h.ListArtists,
		router.OpListArtistAlbums:     h.ListArtistAlbums,
		router.OpListArtistSongs:      h.ListArtistSongs,
		router.OpGetArtist:            h.GetArtist,
		router.OpCreateArtist:         h.CreateArtist,
		router.OpUpdateArtist:         h.UpdateArtist,
		router.OpDeleteArtist:         h.DeleteArtist,
		router.OpCreateAlbum:          h.CreateAlbum,
		router.OpListAlbumSongs:       h.ListAlbumSongs,
		router.OpGetAlbum:             h.GetAlbum,
		router.OpUpdateAlbum:          h.UpdateAlbum,
		router.OpDeleteAlbum:          h.DeleteAlbum,
		router.OpCreateSong:           h.CreateSong,
		router.OpListTrackNumberSongs: h.ListTrackNumberSongs,
		router.OpGetSong:              h.GetSong,
		router.OpUpdateSong:           h.UpdateSong,
		router.OpDeleteSong:           h.DeleteSong,
	}
}

// parseID coerces a path segment to a numeric id. Anything unparsable can
// never name a stored entity.
func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// requireName returns the body's name field or ErrUnprocessableBody
func requireName(req *Request) (string, error) {
	if req.PayloadErr != nil {
		return "", unprocessable(req.PayloadErr)
	}
	name, ok := req.Payload.String("name")
	if !ok {
		return "", unprocessable(nil)
	}
	return name, nil
}

// songFields holds the optional song fields of a request body
type songFields struct {
	lyrics         string
	hasLyrics      bool
	trackNumber    int
	hasTrackNumber bool
}

func readSongFields(req *Request) (songFields, error) {
	var fields songFields
	var err error

	fields.lyrics, fields.hasLyrics, err = req.Payload.OptionalString("lyrics")
	if err != nil {
		return fields, unprocessable(err)
	}
	fields.trackNumber, fields.hasTrackNumber, err = req.Payload.OptionalInt("trackNumber")
	if err != nil {
		return fields, unprocessable(err)
	}
	return fields, nil
}

// apply overwrites only the fields the request actually carried
func (f songFields) apply(song *models.Song) {
	if f.hasLyrics {
		lyrics := f.lyrics
		song.Lyrics = &lyrics
	}
	if f.hasTrackNumber {
		trackNumber := f.trackNumber
		song.TrackNumber = &trackNumber
	}
}

func ok(body interface{}) (*Response, error) {
	return &Response{StatusCode: http.StatusOK, Body: body}, nil
}

func created(body interface{}) (*Response, error) {
	return &Response{StatusCode: http.StatusCreated, Body: body}, nil
}

func deleted() (*Response, error) {
	return ok(render.MessageResponse{Message: DeletedMessage})
}

// ListArtists handles GET /artists
func (h *ResourceHandler) ListArtists(req *Request) (*Response, error) {
	return ok(h.store.Artists.List())
}

// ListArtistAlbums handles GET /artists/:artistId/albums
func (h *ResourceHandler) ListArtistAlbums(req *Request) (*Response, error) {
	raw := req.Params.Get("artistId")
	artistID, valid := parseID(raw)
	if !valid || !h.store.Artists.Has(artistID) {
		return nil, notFound(EntityArtist, raw)
	}
	return ok(h.store.AlbumsByArtist(artistID))
}

// ListArtistSongs handles GET /artists/:artistId/songs
func (h *ResourceHandler) ListArtistSongs(req *Request) (*Response, error) {
	raw := req.Params.Get("artistId")
	artistID, valid := parseID(raw)
	if !valid || !h.store.Artists.Has(artistID) {
		return nil, notFound(EntityArtist, raw)
	}
	return ok(h.store.SongsByArtist(artistID))
}

// GetArtist handles GET /artists/:artistId
func (h *ResourceHandler) GetArtist(req *Request) (*Response, error) {
	raw := req.Params.Get("artistId")
	artistID, valid := parseID(raw)
	if !valid {
		return nil, notFound(EntityArtist, raw)
	}

	artist, found := h.store.Artists.Get(artistID)
	if !found {
		return nil, notFound(EntityArtist, raw)
	}

	return ok(ArtistDetail{
		Artist: artist,
		Albums: h.store.AlbumsByArtist(artistID),
	})
}

// CreateArtist handles POST /artists
func (h *ResourceHandler) CreateArtist(req *Request) (*Response, error) {
	name, err := requireName(req)
	if err != nil {
		return nil, err
	}

	artist := h.store.Artists.Insert(func(id int) models.Artist {
		return models.NewArtist(id, name)
	})
	return created(artist)
}

// UpdateArtist handles PUT and PATCH /artists/:artistId
func (h *ResourceHandler) UpdateArtist(req *Request) (*Response, error) {
	name, err := requireName(req)
	if err != nil {
		return nil, err
	}

	raw := req.Params.Get("artistId")
	artistID, valid := parseID(raw)
	if !valid {
		return nil, notFound(EntityArtist, raw)
	}

	now := h.now()
	artist, found := h.store.Artists.Update(artistID, func(a *models.Artist) {
		a.Name = name
		a.Touch(now)
	})
	if !found {
		return nil, notFound(EntityArtist, raw)
	}
	return ok(artist)
}

// DeleteArtist handles DELETE /artists/:artistId. Albums and songs of the
// artist are left in place.
func (h *ResourceHandler) DeleteArtist(req *Request) (*Response, error) {
	raw := req.Params.Get("artistId")
	artistID, valid := parseID(raw)
	if !valid || !h.store.Artists.Delete(artistID) {
		return nil, notFound(EntityArtist, raw)
	}
	return deleted()
}

// CreateAlbum handles POST /artists/:artistId/albums
func (h *ResourceHandler) CreateAlbum(req *Request) (*Response, error) {
	raw := req.Params.Get("artistId")
	artistID, valid := parseID(raw)
	if !valid || !h.store.Artists.Has(artistID) {
		return nil, notFound(EntityArtist, raw)
	}

	name, err := requireName(req)
	if err != nil {
		return nil, err
	}

	album := h.store.Albums.Insert(func(id int) models.Album {
		return models.NewAlbum(id, name, artistID)
	})
	return created(album)
}

// ListAlbumSongs handles GET /albums/:albumId/songs
func (h *ResourceHandler) ListAlbumSongs(req *Request) (*Response, error) {
	raw := req.Params.Get("albumId")
	albumID, valid := parseID(raw)
	if !valid || !h.store.Albums.Has(albumID) {
		return nil, notFound(EntityAlbum, raw)
	}
	return ok(h.store.SongsByAlbum(albumID))
}

// GetAlbum handles GET /albums/:albumId
func (h *ResourceHandler) GetAlbum(req *Request) (*Response, error) {
	raw := req.Params.Get("albumId")
	albumID, valid := parseID(raw)
	if !valid {
		return nil, notFound(EntityAlbum, raw)
	}

	album, found := h.store.Albums.Get(albumID)
	if !found {
		return nil, notFound(EntityAlbum, raw)
	}

	detail := AlbumDetail{
		Album: album,
		Songs: h.store.SongsByAlbum(albumID),
	}
	if artist, found := h.store.Artists.Get(album.ArtistID); found {
		detail.Artist = &artist
	}
	return ok(detail)
}

// UpdateAlbum handles PUT and PATCH /albums/:albumId. Unlike the artist and
// song updates, a missing album is reported before a bad body.
func (h *ResourceHandler) UpdateAlbum(req *Request) (*Response, error) {
	raw := req.Params.Get("albumId")
	albumID, valid := parseID(raw)
	if !valid || !h.store.Albums.Has(albumID) {
		return nil, notFound(EntityAlbum, raw)
	}

	name, err := requireName(req)
	if err != nil {
		return nil, err
	}

	now := h.now()
	album, found := h.store.Albums.Update(albumID, func(a *models.Album) {
		a.Name = name
		a.Touch(now)
	})
	if !found {
		return nil, notFound(EntityAlbum, raw)
	}
	return ok(album)
}

// DeleteAlbum handles DELETE /albums/:albumId
func (h *ResourceHandler) DeleteAlbum(req *Request) (*Response, error) {
	raw := req.Params.Get("albumId")
	albumID, valid := parseID(raw)
	if !valid || !h.store.Albums.Delete(albumID) {
		return nil, notFound(EntityAlbum, raw)
	}
	return deleted()
}

// CreateSong handles POST /albums/:albumId/songs
func (h *ResourceHandler) CreateSong(req *Request) (*Response, error) {
	raw := req.Params.Get("albumId")
	albumID, valid := parseID(raw)
	if !valid || !h.store.Albums.Has(albumID) {
		return nil, notFound(EntityAlbum, raw)
	}

	name, err := requireName(req)
	if err != nil {
		return nil, err
	}
	fields, err := readSongFields(req)
	if err != nil {
		return nil, err
	}

	song := h.store.Songs.Insert(func(id int) models.Song {
		song := models.NewSong(id, name, albumID)
		fields.apply(&song)
		return song
	})
	return created(song)
}

// ListTrackNumberSongs handles GET /trackNumbers/:trackNumber/songs.
// A track number that is not an integer matches nothing.
func (h *ResourceHandler) ListTrackNumberSongs(req *Request) (*Response, error) {
	trackNumber, valid := parseID(req.Params.Get("trackNumber"))
	if !valid {
		return ok([]models.Song{})
	}
	return ok(h.store.SongsByTrackNumber(trackNumber))
}

// GetSong handles GET /songs/:songId
func (h *ResourceHandler) GetSong(req *Request) (*Response, error) {
	raw := req.Params.Get("songId")
	songID, valid := parseID(raw)
	if !valid {
		return nil, notFound(EntitySong, raw)
	}

	song, found := h.store.Songs.Get(songID)
	if !found {
		return nil, notFound(EntitySong, raw)
	}

	detail := SongDetail{Song: song}
	if album, found := h.store.Albums.Get(song.AlbumID); found {
		detail.Album = &album
		if artist, found := h.store.Artists.Get(album.ArtistID); found {
			detail.Artist = &artist
		}
	}
	return ok(detail)
}

// UpdateSong handles PUT and PATCH /songs/:songId. Lyrics and track number
// keep their previous values unless the body carries them.
func (h *ResourceHandler) UpdateSong(req *Request) (*Response, error) {
	name, err := requireName(req)
	if err != nil {
		return nil, err
	}
	fields, err := readSongFields(req)
	if err != nil {
		return nil, err
	}

	raw := req.Params.Get("songId")
	songID, valid := parseID(raw)
	if !valid {
		return nil, notFound(EntitySong, raw)
	}

	now := h.now()
	song, found := h.store.Songs.Update(songID, func(s *models.Song) {
		s.Name = name
		fields.apply(s)
		s.Touch(now)
	})
	if !found {
		return nil, notFound(EntitySong, raw)
	}
	return ok(song)
}

// DeleteSong handles DELETE /songs/:songId
func (h *ResourceHandler) DeleteSong(req *Request) (*Response, error) {
	raw := req.Params.Get("songId")
	songID, valid := parseID(raw)
	if !valid || !h.store.Songs.Delete(songID) {
		return nil, notFound(EntitySong, raw)
	}
	return deleted()
}
