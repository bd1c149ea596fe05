// Package payload turns a fully buffered request body into a key/value map
// according to the request's declared content type.
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"mime"
	"net/url"
	"strconv"
	"strings"
)

// Supported media types
const (
	MIMEJSON = "application/json"
	MIMEForm = "application/x-www-form-urlencoded"
)

// ParseError reports a body that claimed a supported media type but could not be parsed
type ParseError struct {
	ContentType string
	Err         error
}

func (e *ParseError) Error() string {
	return "payload: invalid " + e.ContentType + " body: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TypeError reports a present field holding a value of the wrong kind
type TypeError struct {
	Field string
	Want  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("payload: field %q must be %s", e.Field, e.Want)
}

// Payload is a decoded request body. A nil Payload behaves as empty.
type Payload map[string]any

// Decode parses raw according to contentType. Unknown or missing content
// types and empty bodies produce an empty payload.
func Decode(contentType string, raw []byte) (Payload, error) {
	if len(raw) == 0 {
		return Payload{}, nil
	}

	switch mediaType(contentType) {
	case MIMEJSON:
		return decodeJSON(raw)
	case MIMEForm:
		return decodeForm(raw)
	default:
		return Payload{}, nil
	}
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	return parsed
}

func decodeJSON(raw []byte) (Payload, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var document any
	if err := decoder.Decode(&document); err != nil {
		return nil, &ParseError{ContentType: MIMEJSON, Err: err}
	}
	if decoder.More() {
		return nil, &ParseError{ContentType: MIMEJSON, Err: fmt.Errorf("unexpected data after top-level value")}
	}

	object, ok := document.(map[string]any)
	if !ok {
		// arrays, strings and numbers carry no fields
		return Payload{}, nil
	}
	return Payload(object), nil
}

// decodeForm splits on '&' only and cuts each pair at its first '='. Keys and
// values are unescaped with '+' as space. The last duplicate key wins.
func decodeForm(raw []byte) (Payload, error) {
	result := Payload{}
	for _, pair := range strings.Split(string(raw), "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, &ParseError{ContentType: MIMEForm, Err: err}
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, &ParseError{ContentType: MIMEForm, Err: err}
		}
		if key == "" {
			continue
		}
		result[key] = value
	}
	return result, nil
}

// Has reports whether key is present with a non-null value
func (p Payload) Has(key string) bool {
	value, ok := p[key]
	return ok && value != nil
}

// String returns a present, non-empty string field
func (p Payload) String(key string) (string, bool) {
	value, ok := p[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// OptionalString returns the string field if present. Absent and null both
// report present == false; any other non-string value is a TypeError.
func (p Payload) OptionalString(key string) (value string, present bool, err error) {
	if !p.Has(key) {
		return "", false, nil
	}
	value, ok := p[key].(string)
	if !ok {
		return "", false, &TypeError{Field: key, Want: "a string"}
	}
	return value, true, nil
}

// OptionalInt returns the integer field if present. JSON numbers and decimal
// strings are accepted when they hold a whole value, so 3, "3", 3.0 and 3e0
// all read as 3. Absent and null both report present == false.
func (p Payload) OptionalInt(key string) (value int, present bool, err error) {
	if !p.Has(key) {
		return 0, false, nil
	}

	var text string
	switch v := p[key].(type) {
	case json.Number:
		text = v.String()
	case string:
		text = strings.TrimSpace(v)
	default:
		return 0, false, &TypeError{Field: key, Want: "an integer"}
	}

	if n, convErr := strconv.Atoi(text); convErr == nil {
		return n, true, nil
	}

	f, convErr := strconv.ParseFloat(text, 64)
	if convErr != nil || f != math.Trunc(f) || math.Abs(f) > maxExactInt {
		return 0, false, &TypeError{Field: key, Want: "an integer"}
	}
	return int(f), true, nil
}

// maxExactInt is the largest magnitude a float64 holds without losing integers
const maxExactInt = 1 << 53
