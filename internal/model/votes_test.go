package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVotesUpvoteIsIdempotent(t *testing.T) {
	v := NoVotes()
	v.Upvote("alice")
	once := v.Clone()
	v.Upvote("alice")

	assert.Equal(t, once, v)
	assert.Equal(t, []string{"alice"}, v.UpvotedBy)
	assert.Empty(t, v.DownvotedBy)
}

func TestVotesSwitchSides(t *testing.T) {
	v := NoVotes()
	v.Upvote("alice")
	v.Upvote("bob")
	v.Downvote("alice")

	assert.Equal(t, []string{"bob"}, v.UpvotedBy)
	assert.Equal(t, []string{"alice"}, v.DownvotedBy)

	v.Upvote("alice")
	assert.Equal(t, []string{"bob", "alice"}, v.UpvotedBy)
	assert.Empty(t, v.DownvotedBy)
}

func TestVotesOnNilSets(t *testing.T) {
	var v Votes
	v.Downvote("carol")

	assert.Equal(t, []string{"carol"}, v.DownvotedBy)
	assert.NotNil(t, v.UpvotedBy)
}

func TestWithoutID(t *testing.T) {
	ids := []int64{1, 2, 3, 2}

	assert.Equal(t, []int64{1, 3, 2}, WithoutID(ids, 2))
	assert.Equal(t, []int64{1, 2, 3, 2}, ids, "input must not be modified")
	assert.Equal(t, []int64{}, WithoutID(nil, 9))
}

func TestCloneDoesNotAlias(t *testing.T) {
	a := Article{ID: 1, CommentIDs: []int64{4}, Votes: NoVotes()}
	b := a.Clone()
	b.CommentIDs[0] = 5
	b.Upvote("dave")

	assert.Equal(t, []int64{4}, a.CommentIDs)
	assert.Empty(t, a.UpvotedBy)
}

func TestArticleViewJSONShape(t *testing.T) {
	view := ArticleView{
		Article: Article{
			ID:         1,
			Title:      "T",
			URL:        "U",
			Username:   "alice",
			CommentIDs: []int64{},
			Votes:      NoVotes(),
		},
		Comments: []Comment{},
	}

	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":1,"title":"T","url":"U","username":"alice","commentIds":[],"upvotedBy":[],"downvotedBy":[],"comments":[]}`,
		string(data))
}
