package model

// Comment data model.
type Comment struct {
	ID        int64  `json:"id" yaml:"id"`
	Body      string `json:"body" yaml:"body"`
	Username  string `json:"username" yaml:"username"`
	ArticleID int64  `json:"articleId" yaml:"articleId"`
	Votes     `yaml:",inline"`
}

func (c Comment) Clone() Comment {
	c.Votes = c.Votes.Clone()

	return c
}
