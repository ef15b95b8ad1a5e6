//go:build !integration
// +build !integration

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tina-pina/the-scoop/internal/payload"
	"github.com/tina-pina/the-scoop/internal/router"
	"github.com/tina-pina/the-scoop/internal/server"
	"github.com/tina-pina/the-scoop/internal/store"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	srv := server.New(router.New(store.New()), zaptest.NewLogger(t).Sugar(), nil)
	app := httptest.NewServer(srv.Routes())
	diag := httptest.NewServer(server.DiagRoutes(nil))
	t.Cleanup(app.Close)
	t.Cleanup(diag.Close)

	return &Client{Client: *app.Client(), Addr: app.URL, DiagAddr: diag.URL}
}

func TestPing(t *testing.T) {
	c := newClient(t)

	s, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pong", s)
}

func TestClientFlow(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	u, err := c.CreateUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	a, err := c.CreateArticle(ctx, payload.ArticleFields{Title: "T", URL: "U", Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)

	cm, err := c.CreateComment(ctx, payload.CommentFields{Body: "hi", Username: "alice", ArticleID: payload.ID(a.ID)})
	require.NoError(t, err)
	assert.Equal(t, a.ID, cm.ArticleID)

	a, err = c.UpvoteArticle(ctx, a.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, a.UpvotedBy)

	view, err := c.GetArticle(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "hi", view.Comments[0].Body)

	profile, err := c.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, profile.UserArticles, 1)
	assert.Len(t, profile.UserComments, 1)

	require.NoError(t, c.DeleteArticle(ctx, a.ID))

	list, err := c.ListArticles(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetUserEscapesUsername(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	_, err := c.CreateUser(ctx, "bob")
	require.NoError(t, err)
	_, err = c.CreateUser(ctx, "bob?x=1")
	require.NoError(t, err)

	profile, err := c.GetUser(ctx, "bob?x=1")
	require.NoError(t, err)
	assert.Equal(t, "bob?x=1", profile.User.Username)
}

func TestAPIError(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	_, err := c.GetArticle(ctx, 42)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	_, err = c.CreateArticle(ctx, payload.ArticleFields{Title: "T", URL: "U", Username: "nobody"})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	err = c.DeleteArticle(ctx, 42)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}
