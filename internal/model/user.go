package model

// User data model. The username is the primary key.
type User struct {
	Username   string  `json:"username" yaml:"username"`
	ArticleIDs []int64 `json:"articleIds" yaml:"articleIds"`
	CommentIDs []int64 `json:"commentIds" yaml:"commentIds"`
}

// NewUser returns a user with empty id lists.
func NewUser(username string) User {
	return User{
		Username:   username,
		ArticleIDs: []int64{},
		CommentIDs: []int64{},
	}
}

func (u User) Clone() User {
	u.ArticleIDs = cloneIDs(u.ArticleIDs)
	u.CommentIDs = cloneIDs(u.CommentIDs)

	return u
}
