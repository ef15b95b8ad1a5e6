// Package route decodes a request path into a route template and its
// parameters.
package route

import "strings"

// Slot names the parameter a template carries after its collection.
type Slot int

const (
	SlotNone Slot = iota
	SlotID
	SlotUsername
)

const (
	Upvote   = "upvote"
	Downvote = "downvote"
)

// Template is a logical route such as /articles/:id/upvote.
type Template struct {
	Collection string
	Slot       Slot
	Action     string
}

// Bare collection templates and the templates derived from them.
var (
	Users    = Template{Collection: "users"}
	Articles = Template{Collection: "articles"}
	Comments = Template{Collection: "comments"}
)

// Member returns the template addressing a single element of t.
func (t Template) Member() Template {
	slot := SlotID
	if t.Collection == Users.Collection {
		slot = SlotUsername
	}

	return Template{Collection: t.Collection, Slot: slot}
}

// Vote returns the template for an upvote or downvote on an element of t.
func (t Template) Vote(action string) Template {
	return Template{Collection: t.Collection, Slot: SlotID, Action: action}
}

// String renders the template as /collection/:slot/action.
func (t Template) String() string {
	return t.render(":id", ":username")
}

// Pattern renders the template in chi syntax.
func (t Template) Pattern() string {
	return t.render("{id}", "{username}")
}

func (t Template) render(id, username string) string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(t.Collection)
	switch t.Slot {
	case SlotID:
		b.WriteString("/")
		b.WriteString(id)
	case SlotUsername:
		b.WriteString("/")
		b.WriteString(username)
	}
	if t.Action != "" {
		b.WriteString("/")
		b.WriteString(t.Action)
	}

	return b.String()
}

// Params is the outcome of parsing a path. Key holds the raw id or
// username taken from the second segment; it is empty when the path has
// none. Operations decide what a bad key means.
type Params struct {
	Template Template
	Key      string
}

// Parse maps path onto a template by the position of its segments.
// Segments beyond the ones a template uses are ignored.
func Parse(path string) Params {
	segments := split(path)

	var p Params
	if len(segments) > 1 {
		p.Key = segments[1]
	}

	switch {
	case len(segments) == 1:
		p.Template = Template{Collection: segments[0]}
	case len(segments) > 2 && (segments[2] == Upvote || segments[2] == Downvote):
		p.Template = Template{Collection: segments[0], Slot: SlotID, Action: segments[2]}
	case len(segments) > 0 && segments[0] == Users.Collection:
		p.Template = Users.Member()
	case len(segments) > 1:
		p.Template = Template{Collection: segments[0], Slot: SlotID}
	}

	return p
}

func split(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}
