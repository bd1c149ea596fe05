// Package router classifies a request method and path into one of the
// catalogue operations using a declarative, ordered route table.
package router

import (
	"net/http"
	"strings"
)

// Operation names a logical endpoint
type Operation int

const (
	OpNone Operation = iota
	OpListArtists
	OpListArtistAlbums
	OpListArtistSongs
	OpGetArtist
	OpCreateArtist
	OpUpdateArtist
	OpDeleteArtist
	OpCreateAlbum
	OpListAlbumSongs
	OpGetAlbum
	OpUpdateAlbum
	OpDeleteAlbum
	OpCreateSong
	OpListTrackNumberSongs
	OpGetSong
	OpUpdateSong
	OpDeleteSong
)

var operationNames = map[Operation]string{
	OpNone:                 "none",
	OpListArtists:          "list_artists",
	OpListArtistAlbums:     "list_artist_albums",
	OpListArtistSongs:      "list_artist_songs",
	OpGetArtist:            "get_artist",
	OpCreateArtist:         "create_artist",
	OpUpdateArtist:         "update_artist",
	OpDeleteArtist:         "delete_artist",
	OpCreateAlbum:          "create_album",
	OpListAlbumSongs:       "list_album_songs",
	OpGetAlbum:             "get_album",
	OpUpdateAlbum:          "update_album",
	OpDeleteAlbum:          "delete_album",
	OpCreateSong:           "create_song",
	OpListTrackNumberSongs: "list_track_number_songs",
	OpGetSong:              "get_song",
	OpUpdateSong:           "update_song",
	OpDeleteSong:           "delete_song",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "unknown"
}

// Params holds values captured from :name pattern segments
type Params map[string]string

// Get returns the captured value for name, or "" if absent
func (p Params) Get(name string) string {
	return p[name]
}

// Route is one row of the route table.
//
// Pattern segments starting with ':' capture any value, including an empty
// one. Other segments must match exactly. Unless Exact is set, a path may
// carry extra trailing segments beyond the pattern.
type Route struct {
	Methods   []string
	Pattern   string
	Exact     bool
	Operation Operation

	segments []string
}

// Match is the outcome of a successful lookup
type Match struct {
	Route     *Route
	Operation Operation
	Params    Params
}

// Table is an ordered list of routes; the first matching route wins
type Table struct {
	routes []*Route
}

// NewTable compiles routes in the given precedence order
func NewTable(routes ...Route) *Table {
	t := &Table{routes: make([]*Route, 0, len(routes))}
	for i := range routes {
		route := routes[i]
		route.segments = splitPath(route.Pattern)
		t.routes = append(t.routes, &route)
	}
	return t
}

// Routes returns the compiled routes in precedence order
func (t *Table) Routes() []Route {
	result := make([]Route, 0, len(t.routes))
	for _, route := range t.routes {
		result = append(result, *route)
	}
	return result
}

// Match finds the first route accepting method and path
func (t *Table) Match(method, path string) (Match, bool) {
	segments := splitPath(path)

	for _, route := range t.routes {
		if !route.allows(method) {
			continue
		}
		params, ok := route.match(segments)
		if !ok {
			continue
		}
		return Match{Route: route, Operation: route.Operation, Params: params}, true
	}

	return Match{Operation: OpNone}, false
}

func (r *Route) allows(method string) bool {
	for _, allowed := range r.Methods {
		if strings.EqualFold(allowed, method) {
			return true
		}
	}
	return false
}

func (r *Route) match(segments []string) (Params, bool) {
	if len(segments) < len(r.segments) {
		return nil, false
	}
	if r.Exact && len(segments) != len(r.segments) {
		return nil, false
	}

	params := Params{}
	for i, want := range r.segments {
		if strings.HasPrefix(want, ":") {
			params[want[1:]] = segments[i]
			continue
		}
		if want != segments[i] {
			return nil, false
		}
	}
	return params, true
}

// splitPath drops the leading slash and splits on '/'. A trailing slash
// yields an empty final segment, so "/artists/" has an empty id segment.
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return []string{}
	}
	return strings.Split(path, "/")
}

var (
	get    = []string{http.MethodGet}
	post   = []string{http.MethodPost}
	edit   = []string{http.MethodPut, http.MethodPatch}
	remove = []string{http.MethodDelete}
)

// Catalogue returns the route table for the artist/album/song API.
// Order matters: child listings are declared before the by-id lookups they
// would otherwise be shadowed by.
func Catalogue() *Table {
	return NewTable(
		Route{Methods: get, Pattern: "/artists", Exact: true, Operation: OpListArtists},
		Route{Methods: get, Pattern: "/artists/:artistId/albums", Operation: OpListArtistAlbums},
		Route{Methods: get, Pattern: "/artists/:artistId/songs", Operation: OpListArtistSongs},
		Route{Methods: get, Pattern: "/artists/:artistId", Operation: OpGetArtist},
		Route{Methods: post, Pattern: "/artists", Exact: true, Operation: OpCreateArtist},
		Route{Methods: edit, Pattern: "/artists/:artistId", Operation: OpUpdateArtist},
		Route{Methods: remove, Pattern: "/artists/:artistId", Operation: OpDeleteArtist},
		Route{Methods: post, Pattern: "/artists/:artistId/albums", Operation: OpCreateAlbum},
		Route{Methods: get, Pattern: "/albums/:albumId/songs", Operation: OpListAlbumSongs},
		Route{Methods: get, Pattern: "/albums/:albumId", Operation: OpGetAlbum},
		Route{Methods: edit, Pattern: "/albums/:albumId", Operation: OpUpdateAlbum},
		Route{Methods: remove, Pattern: "/albums/:albumId", Operation: OpDeleteAlbum},
		Route{Methods: post, Pattern: "/albums/:albumId/songs", Operation: OpCreateSong},
		Route{Methods: get, Pattern: "/trackNumbers/:trackNumber/songs", Operation: OpListTrackNumberSongs},
		Route{Methods: get, Pattern: "/songs/:songId", Operation: OpGetSong},
		Route{Methods: edit, Pattern: "/songs/:songId", Operation: OpUpdateSong},
		Route{Methods: remove, Pattern: "/songs/:songId", Operation: OpDeleteSong},
	)
}
