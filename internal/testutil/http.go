package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// HTTPTestHelper provides utilities for HTTP testing
type HTTPTestHelper struct {
	t       *testing.T
	handler http.Handler
}

// NewHTTPTestHelper creates a new HTTP test helper serving requests with handler
func NewHTTPTestHelper(t *testing.T, handler http.Handler) *HTTPTestHelper {
	gin.SetMode(gin.TestMode)
	return &HTTPTestHelper{
		t:       t,
		handler: handler,
	}
}

// Do performs a request with an optional raw body and content type
func (h *HTTPTestHelper) Do(method, target, contentType string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	recorder := httptest.NewRecorder()
	h.handler.ServeHTTP(recorder, req)

	return recorder
}

// SendJSON performs a request with a JSON-encoded payload
func (h *HTTPTestHelper) SendJSON(method, target string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(h.t, err, "Failed to marshal JSON payload")

	return h.Do(method, target, "application/json", body)
}

// PostJSON performs a POST request with JSON payload
func (h *HTTPTestHelper) PostJSON(target string, payload interface{}) *httptest.ResponseRecorder {
	return h.SendJSON(http.MethodPost, target, payload)
}

// PatchJSON performs a PATCH request with JSON payload
func (h *HTTPTestHelper) PatchJSON(target string, payload interface{}) *httptest.ResponseRecorder {
	return h.SendJSON(http.MethodPatch, target, payload)
}

// PutJSON performs a PUT request with JSON payload
func (h *HTTPTestHelper) PutJSON(target string, payload interface{}) *httptest.ResponseRecorder {
	return h.SendJSON(http.MethodPut, target, payload)
}

// PostForm performs a POST request with a url-encoded form payload
func (h *HTTPTestHelper) PostForm(target string, values url.Values) *httptest.ResponseRecorder {
	return h.Do(http.MethodPost, target, "application/x-www-form-urlencoded", []byte(values.Encode()))
}

// PostRaw performs a POST request with a raw body, for malformed payloads
func (h *HTTPTestHelper) PostRaw(target, contentType, body string) *httptest.ResponseRecorder {
	return h.Do(http.MethodPost, target, contentType, []byte(body))
}

// Get performs a GET request
func (h *HTTPTestHelper) Get(target string) *httptest.ResponseRecorder {
	return h.Do(http.MethodGet, target, "", nil)
}

// Delete performs a DELETE request
func (h *HTTPTestHelper) Delete(target string) *httptest.ResponseRecorder {
	return h.Do(http.MethodDelete, target, "", nil)
}

// AssertJSONResponse asserts that the response is valid JSON and unmarshals it
func (h *HTTPTestHelper) AssertJSONResponse(recorder *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	require.Equal(h.t, expectedStatus, recorder.Code, "Unexpected status code: %s", recorder.Body.String())
	require.Equal(h.t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"), "Expected JSON content type")

	err := json.Unmarshal(recorder.Body.Bytes(), target)
	require.NoError(h.t, err, "Failed to unmarshal JSON response")
}

// AssertErrorResponse asserts the {message, statusCode} error envelope
func (h *HTTPTestHelper) AssertErrorResponse(recorder *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	var errorResponse struct {
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	}
	h.AssertJSONResponse(recorder, expectedStatus, &errorResponse)

	require.Equal(h.t, expectedMessage, errorResponse.Message, "Unexpected error message")
	require.Equal(h.t, expectedStatus, errorResponse.StatusCode, "Envelope status code should mirror the HTTP status")
}

// AssertRouteNotFound asserts the plain-text catch-all 404
func (h *HTTPTestHelper) AssertRouteNotFound(recorder *httptest.ResponseRecorder) {
	require.Equal(h.t, http.StatusNotFound, recorder.Code, "Unexpected status code")
	require.True(h.t, strings.HasPrefix(recorder.Header().Get("Content-Type"), "text/plain"), "Expected plain text content type")
	require.Equal(h.t, "Endpoint not found", recorder.Body.String())
}
