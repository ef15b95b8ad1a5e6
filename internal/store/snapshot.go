package store

import "github.com/tina-pina/the-scoop/internal/model"

// Snapshot is the persistence-facing view of a Store. Its keys match the
// database file written by earlier releases, where deleted slots were kept
// as null entries; nil entries are skipped on Restore.
type Snapshot struct {
	Users         map[string]*model.User   `json:"users,omitempty" yaml:"users,omitempty"`
	Articles      map[int64]*model.Article `json:"articles,omitempty" yaml:"articles,omitempty"`
	NextArticleID int64                    `json:"nextArticleId,omitempty" yaml:"nextArticleId,omitempty"`
	Comments      map[int64]*model.Comment `json:"comments,omitempty" yaml:"comments,omitempty"`
	NextCommentID int64                    `json:"nextCommentId,omitempty" yaml:"nextCommentId,omitempty"`
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Users:         make(map[string]*model.User, len(s.users)),
		Articles:      make(map[int64]*model.Article, len(s.articles)),
		Comments:      make(map[int64]*model.Comment, len(s.comments)),
		NextArticleID: s.nextArticleID,
		NextCommentID: s.nextCommentID,
	}
	for name, u := range s.users {
		u := u.Clone()
		snap.Users[name] = &u
	}
	for id, a := range s.articles {
		a := a.Clone()
		snap.Articles[id] = &a
	}
	for id, c := range s.comments {
		c := c.Clone()
		snap.Comments[id] = &c
	}

	return snap
}

// Restore overwrites each collection and counter that snap carries and
// leaves the others untouched. Counters end up above every restored id so
// identifiers are never handed out twice.
func (s *Store) Restore(snap Snapshot) {
	if snap.Users != nil {
		s.users = make(map[string]model.User, len(snap.Users))
		for name, u := range snap.Users {
			if u == nil {
				continue
			}
			restored := u.Clone()
			if restored.Username == "" {
				restored.Username = name
			}
			s.users[restored.Username] = restored
		}
	}
	if snap.Articles != nil {
		s.articles = make(map[int64]model.Article, len(snap.Articles))
		for id, a := range snap.Articles {
			if a == nil {
				continue
			}
			restored := a.Clone()
			if restored.ID == 0 {
				restored.ID = id
			}
			s.articles[restored.ID] = restored
		}
	}
	if snap.Comments != nil {
		s.comments = make(map[int64]model.Comment, len(snap.Comments))
		for id, c := range snap.Comments {
			if c == nil {
				continue
			}
			restored := c.Clone()
			if restored.ID == 0 {
				restored.ID = id
			}
			s.comments[restored.ID] = restored
		}
	}
	if snap.NextArticleID > 0 {
		s.nextArticleID = snap.NextArticleID
	}
	if snap.NextCommentID > 0 {
		s.nextCommentID = snap.NextCommentID
	}

	for id := range s.articles {
		if id >= s.nextArticleID {
			s.nextArticleID = id + 1
		}
	}
	for id := range s.comments {
		if id >= s.nextCommentID {
			s.nextCommentID = id + 1
		}
	}
}
