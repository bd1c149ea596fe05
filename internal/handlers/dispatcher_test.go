package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discography/internal/router"
	"discography/internal/testutil"
)

func newStubDispatcher(op router.Operation, fn OperationFunc) *Dispatcher {
	return &Dispatcher{
		routes:     router.Catalogue(),
		operations: map[router.Operation]OperationFunc{op: fn},
	}
}

func TestDispatcher_PassesParamsAndPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var captured *Request
	dispatcher := newStubDispatcher(router.OpCreateSong, func(req *Request) (*Response, error) {
		captured = req
		return &Response{StatusCode: http.StatusCreated, Body: gin.H{"ok": true}}, nil
	})
	helper := testutil.NewHTTPTestHelper(t, NewEngine(dispatcher))

	recorder := helper.PostJSON("/albums/7/songs", map[string]interface{}{"name": "Snow", "trackNumber": 2})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "7", captured.Params.Get("albumId"))
	assert.NoError(t, captured.PayloadErr)
	name, ok := captured.Payload.String("name")
	assert.True(t, ok)
	assert.Equal(t, "Snow", name)
}

func TestDispatcher_MalformedBodyReachesOperation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var captured *Request
	dispatcher := newStubDispatcher(router.OpCreateArtist, func(req *Request) (*Response, error) {
		captured = req
		return &Response{StatusCode: http.StatusOK, Body: gin.H{}}, nil
	})
	helper := testutil.NewHTTPTestHelper(t, NewEngine(dispatcher))

	helper.PostRaw("/artists", "application/json", `{"name":`)

	require.NotNil(t, captured)
	assert.Error(t, captured.PayloadErr)
}

func TestDispatcher_ErrorMapping(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{"not found", notFound(EntityAlbum, "3"), http.StatusNotFound, "Album not found"},
		{"wrapped not found", fmt.Errorf("lookup: %w", notFound(EntitySong, "3")), http.StatusNotFound, "Song not found"},
		{"unprocessable", unprocessable(nil), http.StatusUnprocessableEntity, "Something is wrong with the body"},
		{"unprocessable with cause", unprocessable(errors.New("bad field")), http.StatusUnprocessableEntity, "Something is wrong with the body"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := newStubDispatcher(router.OpListArtists, func(req *Request) (*Response, error) {
				return nil, tt.err
			})
			helper := testutil.NewHTTPTestHelper(t, NewEngine(dispatcher))

			helper.AssertErrorResponse(helper.Get("/artists"), tt.expectedStatus, tt.expectedMessage)
		})
	}
}

func TestDispatcher_MissingOperationIsRouteNotFound(t *testing.T) {
	dispatcher := newStubDispatcher(router.OpListArtists, func(req *Request) (*Response, error) {
		return &Response{StatusCode: http.StatusOK, Body: []int{}}, nil
	})
	helper := testutil.NewHTTPTestHelper(t, NewEngine(dispatcher))

	helper.AssertRouteNotFound(helper.Get("/songs/1"))
}

func TestRecovery_PanicBecomesInternalError(t *testing.T) {
	dispatcher := newStubDispatcher(router.OpGetArtist, func(req *Request) (*Response, error) {
		panic("unexpected state")
	})
	helper := testutil.NewHTTPTestHelper(t, NewEngine(dispatcher))

	helper.AssertErrorResponse(helper.Get("/artists/1"), http.StatusInternalServerError, "Internal server error")
}

func TestRequestID(t *testing.T) {
	helper := setupTestRouter(t, testutil.CreateTestStore())

	t.Run("generated when absent", func(t *testing.T) {
		recorder := helper.Get("/artists")
		assert.Len(t, recorder.Header().Get(RequestIDHeader), 36)
	})

	t.Run("echoed when supplied", func(t *testing.T) {
		engine := NewEngine(NewDispatcher(router.Catalogue(), NewResourceHandler(testutil.CreateTestStore())))
		req := httptest.NewRequest(http.MethodGet, "/artists", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		recorder := httptest.NewRecorder()

		engine.ServeHTTP(recorder, req)

		assert.Equal(t, "abc-123", recorder.Header().Get(RequestIDHeader))
	})

	t.Run("set on unmatched routes", func(t *testing.T) {
		recorder := helper.Get("/nowhere")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get(RequestIDHeader))
	})
}
