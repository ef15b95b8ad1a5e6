// Package article implements the article operations.
package article

import (
	"net/http"

	"github.com/tina-pina/the-scoop/internal/model"
	"github.com/tina-pina/the-scoop/internal/payload"
	"github.com/tina-pina/the-scoop/internal/route"
	"github.com/tina-pina/the-scoop/internal/store"
)

// List returns every article, newest first.
func List(s *store.Store, _ payload.Request) payload.Result {
	return payload.JSON(http.StatusOK, ListResponse{Articles: s.Articles()})
}

// Get returns the article with its comments resolved. The stored article
// is left untouched.
func Get(s *store.Store, req payload.Request) payload.Result {
	id, ok := req.ID()
	if !ok {
		return payload.BadRequest
	}

	a, found := s.Article(id)
	if !found {
		return payload.NotFound
	}

	view := model.ArticleView{
		Article:  a,
		Comments: make([]model.Comment, 0, len(a.CommentIDs)),
	}
	for _, commentID := range a.CommentIDs {
		if c, ok := s.Comment(commentID); ok {
			view.Comments = append(view.Comments, c)
		}
	}

	return payload.JSON(http.StatusOK, ViewResponse{Article: view})
}

// Create stores a new article for an existing user.
func Create(s *store.Store, req payload.Request) payload.Result {
	in := req.Article()
	if in == nil || in.Title == "" || in.URL == "" || in.Username == "" {
		return payload.BadRequest
	}

	owner, ok := s.User(in.Username)
	if !ok {
		return payload.BadRequest
	}

	a := model.Article{
		ID:         s.NextArticleID(),
		Title:      in.Title,
		URL:        in.URL,
		Username:   in.Username,
		CommentIDs: []int64{},
		Votes:      model.NoVotes(),
	}
	s.PutArticle(a)

	owner.ArticleIDs = append(owner.ArticleIDs, a.ID)
	s.PutUser(owner)

	return payload.JSON(http.StatusCreated, Response{Article: a})
}

// Update overwrites title and url with the non-empty values supplied.
func Update(s *store.Store, req payload.Request) payload.Result {
	id, ok := req.ID()
	in := req.Article()
	if !ok || in == nil {
		return payload.BadRequest
	}

	a, found := s.Article(id)
	if !found {
		return payload.NotFound
	}

	a.Title = mergeIfNonEmpty(a.Title, in.Title)
	a.URL = mergeIfNonEmpty(a.URL, in.URL)
	s.PutArticle(a)

	return payload.JSON(http.StatusOK, Response{Article: a})
}

// Delete removes the article, every comment on it, and the references
// the owner and the comment authors hold.
func Delete(s *store.Store, req payload.Request) payload.Result {
	id, _ := req.ID()
	a, found := s.Article(id)
	if !found {
		return payload.BadRequest
	}

	for _, commentID := range a.CommentIDs {
		c, ok := s.Comment(commentID)
		if !ok {
			continue
		}
		s.DeleteComment(commentID)

		if author, ok := s.User(c.Username); ok {
			author.CommentIDs = model.WithoutID(author.CommentIDs, commentID)
			s.PutUser(author)
		}
	}

	s.DeleteArticle(id)
	if owner, ok := s.User(a.Username); ok {
		owner.ArticleIDs = model.WithoutID(owner.ArticleIDs, id)
		s.PutUser(owner)
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
	id, _ := req.ID()
	username := req.Username()

	a, found := s.Article(id)
	if !found {
		return payload.BadRequest
	}
	if _, ok := s.User(username); !ok || username == "" {
		return payload.BadRequest
	}

	if action == route.Upvote {
		a.Upvote(username)
	} else {
		a.Downvote(username)
	}
	s.PutArticle(a)

	return payload.JSON(http.StatusOK, Response{Article: a})
}

// mergeIfNonEmpty keeps the current value when the candidate is empty.
func mergeIfNonEmpty(current, candidate string) string {
	if candidate == "" {
		return current
	}

	return candidate
}
