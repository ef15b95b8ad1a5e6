// Package store holds users, articles and comments in memory.
//
// The store does no validation and no locking. Callers enforce referential
// integrity and serialize access. Every read returns a copy and every write
// stores a copy, so nothing outside the store aliases a stored value.
package store

import (
	"sort"

	"github.com/tina-pina/the-scoop/internal/model"
)

type Store struct {
	users         map[string]model.User
	articles      map[int64]model.Article
	comments      map[int64]model.Comment
	nextArticleID int64
	nextCommentID int64
}

// New creates an empty store with both counters at 1.
func New() *Store {
	return &Store{
		users:         make(map[string]model.User),
		articles:      make(map[int64]model.Article),
		comments:      make(map[int64]model.Comment),
		nextArticleID: 1,
		nextCommentID: 1,
	}
}

func (s *Store) User(username string) (model.User, bool) {
	u, ok := s.users[username]
	if !ok {
		return model.User{}, false
	}

	return u.Clone(), true
}

func (s *Store) PutUser(u model.User) {
	s.users[u.Username] = u.Clone()
}

func (s *Store) Article(id int64) (model.Article, bool) {
	a, ok := s.articles[id]
	if !ok {
		return model.Article{}, false
	}

	return a.Clone(), true
}

func (s *Store) PutArticle(a model.Article) {
	s.articles[a.ID] = a.Clone()
}

// DeleteArticle removes the slot entirely. Back-references are the
// caller's job.
func (s *Store) DeleteArticle(id int64) {
	delete(s.articles, id)
}

// Articles returns every stored article ordered by id, newest first.
func (s *Store) Articles() []model.Article {
	list := make([]model.Article, 0, len(s.articles))
	for _, a := range s.articles {
		list = append(list, a.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })

	return list
}

func (s *Store) Comment(id int64) (model.Comment, bool) {
	c, ok := s.comments[id]
	if !ok {
		return model.Comment{}, false
	}

	return c.Clone(), true
}

func (s *Store) PutComment(c model.Comment) {
	s.comments[c.ID] = c.Clone()
}

func (s *Store) DeleteComment(id int64) {
	delete(s.comments, id)
}

// NextArticleID returns the next article id and advances the counter.
func (s *Store) NextArticleID() int64 {
	id := s.nextArticleID
	s.nextArticleID++

	return id
}

// NextCommentID returns the next comment id and advances the counter.
func (s *Store) NextCommentID() int64 {
	id := s.nextCommentID
	s.nextCommentID++

	return id
}
