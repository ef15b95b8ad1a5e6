package model

import "slices"

// Votes holds the usernames that voted on an article or a comment. A
// username is never in both sets.
type Votes struct {
	UpvotedBy   []string `json:"upvotedBy" yaml:"upvotedBy"`
	DownvotedBy []string `json:"downvotedBy" yaml:"downvotedBy"`
}

// NoVotes returns empty vote sets.
func NoVotes() Votes {
	return Votes{UpvotedBy: []string{}, DownvotedBy: []string{}}
}

// Upvote moves username out of DownvotedBy and into UpvotedBy. Upvoting
// twice is a no-op.
func (v *Votes) Upvote(username string) {
	v.DownvotedBy = without(v.DownvotedBy, username)
	if !slices.Contains(v.UpvotedBy, username) {
		v.UpvotedBy = append(v.UpvotedBy, username)
	}
}

// Downvote is the mirror of Upvote.
func (v *Votes) Downvote(username string) {
	v.UpvotedBy = without(v.UpvotedBy, username)
	if !slices.Contains(v.DownvotedBy, username) {
		v.DownvotedBy = append(v.DownvotedBy, username)
	}
}

func (v Votes) Clone() Votes {
	return Votes{
		UpvotedBy:   cloneStrings(v.UpvotedBy),
		DownvotedBy: cloneStrings(v.DownvotedBy),
	}
}
