// Package client is a small HTTP client for the scoop API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tina-pina/the-scoop/internal/article"
	"github.com/tina-pina/the-scoop/internal/comment"
	"github.com/tina-pina/the-scoop/internal/model"
	"github.com/tina-pina/the-scoop/internal/payload"
	"github.com/tina-pina/the-scoop/internal/user"
)

type Client struct {
	http.Client
	Addr     string
	DiagAddr string
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Ping checks the diagnostics server.
func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DiagAddr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

// CreateUser creates username, or fetches it when it already exists.
func (c *Client) CreateUser(ctx context.Context, username string) (model.User, error) {
	var out user.Response
	err := c.do(ctx, http.MethodPost, "/users", payload.Body{Username: username}, &out)

	return out.User, err
}

func (c *Client) GetUser(ctx context.Context, username string) (user.ProfileResponse, error) {
	var out user.ProfileResponse
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, &out)

	return out, err
}

func (c *Client) ListArticles(ctx context.Context) ([]model.Article, error) {
	var out article.ListResponse
	err := c.do(ctx, http.MethodGet, "/articles", nil, &out)

	return out.Articles, err
}

func (c *Client) GetArticle(ctx context.Context, id int64) (model.ArticleView, error) {
	var out article.ViewResponse
	err := c.do(ctx, http.MethodGet, articlePath(id), nil, &out)

	return out.Article, err
}

func (c *Client) CreateArticle(ctx context.Context, fields payload.ArticleFields) (model.Article, error) {
	var out article.Response
	err := c.do(ctx, http.MethodPost, "/articles", payload.Body{Article: &fields}, &out)

	return out.Article, err
}

func (c *Client) UpvoteArticle(ctx context.Context, id int64, username string) (model.Article, error) {
	var out article.Response
	err := c.do(ctx, http.MethodPut, articlePath(id)+"/upvote", payload.Body{Username: username}, &out)

	return out.Article, err
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, articlePath(id), nil, nil)
}

func (c *Client) CreateComment(ctx context.Context, fields payload.CommentFields) (model.Comment, error) {
	var out comment.Response
	err := c.do(ctx, http.MethodPost, "/comments", payload.Body{Comment: &fields}, &out)

	return out.Comment, err
}

func articlePath(id int64) string {
	return "/articles/" + strconv.FormatInt(id, 10)
}

// do sends in as JSON when it is not nil and decodes the response into out
// when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
