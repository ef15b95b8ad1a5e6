// Package user implements the user operations.
package user

import (
	"net/http"

	"github.com/tina-pina/the-scoop/internal/model"
	"github.com/tina-pina/the-scoop/internal/payload"
	"github.com/tina-pina/the-scoop/internal/store"
)

type Response struct {
	User model.User `json:"user"`
}

// ProfileResponse is a user with everything they authored, resolved in
// the order of the user's id lists.
type ProfileResponse struct {
	User         model.User      `json:"user"`
	UserArticles []model.Article `json:"userArticles"`
	UserComments []model.Comment `json:"userComments"`
}

// CreateOrFetch returns the user named by body.username, creating it with
// empty id lists on first reference.
func CreateOrFetch(s *store.Store, req payload.Request) payload.Result {
	username := req.Username()
	if username == "" {
		return payload.BadRequest
	}

	if u, ok := s.User(username); ok {
		return payload.JSON(http.StatusOK, Response{User: u})
	}

	u := model.NewUser(username)
	s.PutUser(u)

	return payload.JSON(http.StatusCreated, Response{User: u})
}

// Get returns the user named by the path together with its articles and
// comments.
func Get(s *store.Store, req payload.Request) payload.Result {
	username := req.Params.Key
	if username == "" {
		return payload.BadRequest
	}

	u, ok := s.User(username)
	if !ok {
		return payload.NotFound
	}

	resp := ProfileResponse{
		User:         u,
		UserArticles: make([]model.Article, 0, len(u.ArticleIDs)),
		UserComments: make([]model.Comment, 0, len(u.CommentIDs)),
	}
	for _, id := range u.ArticleIDs {
		if a, ok := s.Article(id); ok {
			resp.UserArticles = append(resp.UserArticles, a)
		}
	}
	for _, id := range u.CommentIDs {
		if c, ok := s.Comment(id); ok {
			resp.UserComments = append(resp.UserComments, c)
		}
	}

	return payload.JSON(http.StatusOK, resp)
}
