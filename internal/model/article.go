package model

// Article data model. CommentIDs keeps creation order.
type Article struct {
	ID         int64   `json:"id" yaml:"id"`
	Title      string  `json:"title" yaml:"title"`
	URL        string  `json:"url" yaml:"url"`
	Username   string  `json:"username" yaml:"username"` // the author
	CommentIDs []int64 `json:"commentIds" yaml:"commentIds"`
	Votes      `yaml:",inline"`
}

// Clone returns a copy of a that shares no slices with it.
func (a Article) Clone() Article {
	a.CommentIDs = cloneIDs(a.CommentIDs)
	a.Votes = a.Votes.Clone()

	return a
}

// ArticleView is an article together with its resolved comments. It is
// composed for reads and never stored.
type ArticleView struct {
	Article
	Comments []Comment `json:"comments"`
}
