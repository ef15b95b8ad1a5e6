// Package payload defines the normalized request handed to entity
// operations and the result they return.
package payload

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tina-pina/the-scoop/internal/route"
)

// Body is the decoded JSON request body. Every field is optional; the
// operations decide which ones they require.
type Body struct {
	Username string         `json:"username"`
	Article  *ArticleFields `json:"article"`
	Comment  *CommentFields `json:"comment"`
}

type ArticleFields struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Username string `json:"username"`
}

type CommentFields struct {
	Body      string `json:"body"`
	Username  string `json:"username"`
	ArticleID ID     `json:"articleId"`
}

// ID is an entity id in a body. Clients send it either as a JSON number
// or as a string holding a base-10 integer.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var n int64
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0

			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("payload: id %q: %w", s, err)
		}
		n = v
	} else if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n)

	return nil
}

// Request is what an operation sees: the parsed route and, for methods
// that carry one, the decoded body. Body is nil when there is none.
type Request struct {
	Params route.Params
	Body   *Body
}

// ID parses the path key as an entity id. ok is false when the key is
// missing, not a base-10 integer, or zero.
func (r Request) ID() (int64, bool) {
	id, err := strconv.ParseInt(r.Params.Key, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}

// Username returns body.username, or "" without a body.
func (r Request) Username() string {
	if r.Body == nil {
		return ""
	}

	return r.Body.Username
}

func (r Request) Article() *ArticleFields {
	if r.Body == nil {
		return nil
	}

	return r.Body.Article
}

func (r Request) Comment() *CommentFields {
	if r.Body == nil {
		return nil
	}

	return r.Body.Comment
}
