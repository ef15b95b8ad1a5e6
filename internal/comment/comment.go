// Package comment implements the comment operations.
package comment

import (
	"net/http"
	"strconv"

	"github.com/tina-pina/the-scoop/internal/model"
	"github.com/tina-pina/the-scoop/internal/payload"
	"github.com/tina-pina/the-scoop/internal/route"
	"github.com/tina-pina/the-scoop/internal/store"
)

type Response struct {
	Comment model.Comment `json:"comment"`
}

// Create stores a comment by an existing user on an existing article and
// links it from both.
func Create(s *store.Store, req payload.Request) payload.Result {
	in := req.Comment()
	if in == nil || in.Body == "" || in.Username == "" || in.ArticleID == 0 {
		return payload.BadRequest
	}

	author, ok := s.User(in.Username)
	if !ok {
		return payload.BadRequest
	}
	a, ok := s.Article(int64(in.ArticleID))
	if !ok {
		return payload.BadRequest
	}

	c := model.Comment{
		ID:        s.NextCommentID(),
		Body:      in.Body,
		Username:  in.Username,
		ArticleID: int64(in.ArticleID),
		Votes:     model.NoVotes(),
	}
	s.PutComment(c)

	author.CommentIDs = append(author.CommentIDs, c.ID)
	s.PutUser(author)
	a.CommentIDs = append(a.CommentIDs, c.ID)
	s.PutArticle(a)

	return payload.JSON(http.StatusCreated, Response{Comment: c})
}

// Update replaces the body of a comment. The new body is required.
func Update(s *store.Store, req payload.Request) payload.Result {
	in := req.Comment()
	if in == nil {
		return payload.BadRequest
	}
	body, ok := requireNonEmpty(in.Body)
	if !ok {
		return payload.BadRequest
	}

	c, found := lookup(s, req)
	if !found {
		return payload.NotFound
	}

	c.Body = body
	s.PutComment(c)

	return payload.Status(http.StatusOK)
}

// Delete removes the comment and drops it from its author and article.
func Delete(s *store.Store, req payload.Request) payload.Result {
	c, found := lookup(s, req)
	if !found {
		return payload.NotFound
	}

	s.DeleteComment(c.ID)
	if author, ok := s.User(c.Username); ok {
		author.CommentIDs = model.WithoutID(author.CommentIDs, c.ID)
		s.PutUser(author)
	}
	if a, ok := s.Article(c.ArticleID); ok {
		a.CommentIDs = model.WithoutID(a.CommentIDs, c.ID)
		s.PutArticle(a)
	}

	return payload.NoContent
}

func Upvote(s *store.Store, req payload.Request) payload.Result {
	return vote(s, req, route.Upvote)
}

func Downvote(s *store.Store, req payload.Request) payload.Result {
	return vote(s, req, route.Downvote)
}

func vote(s *store.Store, req payload.Request, action string) payload.Result {
	username := req.Username()
	if username == "" {
		return payload.BadRequest
	}
	if _, ok := s.User(username); !ok {
		return payload.BadRequest
	}

	c, found := lookup(s, req)
	if !found {
		return payload.BadRequest
	}

	if action == route.Upvote {
		c.Upvote(username)
	} else {
		c.Downvote(username)
	}
	s.PutComment(c)

	return payload.JSON(http.StatusOK, Response{Comment: c})
}

// lookup resolves the comment named by the path. Comment paths are never
// ambiguous, so any key that does not name a stored comment is simply
// absent.
func lookup(s *store.Store, req payload.Request) (model.Comment, bool) {
	id, err := strconv.ParseInt(req.Params.Key, 10, 64)
	if err != nil {
		return model.Comment{}, false
	}

	return s.Comment(id)
}

// requireNonEmpty rejects an empty replacement value.
func requireNonEmpty(v string) (string, bool) {
	return v, v != ""
}
