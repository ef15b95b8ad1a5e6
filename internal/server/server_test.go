package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tina-pina/the-scoop/internal/router"
	"github.com/tina-pina/the-scoop/internal/store"
)

type observation struct {
	route, method string
	status        int
}

type fakeRecorder struct {
	mu   sync.Mutex
	seen []observation
}

func (f *fakeRecorder) Record(_ context.Context, route, method string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, observation{route, method, status})
}

func newTestServer(t *testing.T) (http.Handler, *fakeRecorder) {
	t.Helper()
	rec := &fakeRecorder{}
	s := New(router.New(store.New()), zaptest.NewLogger(t).Sugar(), rec)

	return s.Routes(), rec
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestCreateUserOverHTTP(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/users", `{"username":"alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"user":{"username":"alice","articleIds":[],"commentIds":[]}}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Requested-With,content-type", rec.Header().Get("Access-Control-Allow-Headers"))

	rec = do(t, h, http.MethodPost, "/users", `{"username":"alice"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnmatchedRouteIsBadRequest(t *testing.T) {
	h, metrics := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodPost, "/articles/1"},
		{http.MethodPatch, "/articles/1"},
		{http.MethodGet, "/nothing/here/at/all"},
		{http.MethodGet, "/"},
	} {
		rec := do(t, h, tc.method, tc.path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tc.method, tc.path)
		assert.Empty(t, rec.Body.String())
	}

	require.NotEmpty(t, metrics.seen)
	assert.Equal(t, unmatchedRoute, metrics.seen[0].route)
}

func TestPreflight(t *testing.T) {
	h, metrics := newTestServer(t)

	rec := do(t, h, http.MethodOptions, "/articles/1/upvote", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "false", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "POST, GET, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, metrics.seen, "no operation runs for a preflight")
}

func TestMalformedBody(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/users", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestEmptyBodyReachesOperation(t *testing.T) {
	h, metrics := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/articles", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, metrics.seen, 1)
	assert.Equal(t, observation{"/articles", http.MethodPost, http.StatusBadRequest}, metrics.seen[0])
}

func TestArticleFlowOverHTTP(t *testing.T) {
	h, metrics := newTestServer(t)

	do(t, h, http.MethodPost, "/users", `{"username":"alice"}`)
	rec := do(t, h, http.MethodPost, "/articles", `{"article":{"title":"T","url":"U","username":"alice"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPost, "/comments", `{"comment":{"body":"hi","username":"alice","articleId":1}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPut, "/comments/1", `{"comment":{"body":"edited"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/articles/1?ignored=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Article struct {
			ID       int64 `json:"id"`
			Comments []struct {
				Body string `json:"body"`
			} `json:"comments"`
		} `json:"article"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.Article.ID)
	require.Len(t, got.Article.Comments, 1)
	assert.Equal(t, "edited", got.Article.Comments[0].Body)

	rec = do(t, h, http.MethodPut, "/articles/1/upvote", `{"username":"alice"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"upvotedBy":["alice"]`)

	rec = do(t, h, http.MethodDelete, "/articles/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/articles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"articles":[]}`, rec.Body.String())

	last := metrics.seen[len(metrics.seen)-1]
	assert.Equal(t, observation{"/articles", http.MethodGet, http.StatusOK}, last)
}

func TestCommentWithStringArticleID(t *testing.T) {
	h, _ := newTestServer(t)

	do(t, h, http.MethodPost, "/users", `{"username":"alice"}`)
	do(t, h, http.MethodPost, "/articles", `{"article":{"title":"T","url":"U","username":"alice"}}`)

	rec := do(t, h, http.MethodPost, "/comments", `{"comment":{"body":"hi","username":"alice","articleId":"1"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"articleId":1`)

	rec = do(t, h, http.MethodPost, "/comments", `{"comment":{"body":"hi","username":"alice","articleId":"x"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutesDoc(t *testing.T) {
	s := New(router.New(store.New()), zaptest.NewLogger(t).Sugar(), nil)

	doc := s.RoutesDoc()
	assert.Contains(t, doc, "/articles/{id}/upvote")
	assert.Contains(t, doc, "/users/{username}")
}

func TestDiagRoutes(t *testing.T) {
	scraped := false
	h := DiagRoutes(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scraped = true
	}))

	rec := do(t, h, http.MethodGet, "/ping", "")
	assert.Equal(t, "pong", rec.Body.String())

	do(t, h, http.MethodGet, "/metrics", "")
	assert.True(t, scraped)
}

func TestLoggerFromContextOutsideRequest(t *testing.T) {
	assert.NotNil(t, LoggerFromContext(context.Background()))
}
