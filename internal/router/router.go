// Package router maps a method and a path onto one entity operation and
// runs it against the store.
package router

import (
	"net/http"
	"sync"

	"github.com/tina-pina/the-scoop/internal/article"
	"github.com/tina-pina/the-scoop/internal/comment"
	"github.com/tina-pina/the-scoop/internal/payload"
	"github.com/tina-pina/the-scoop/internal/route"
	"github.com/tina-pina/the-scoop/internal/store"
	"github.com/tina-pina/the-scoop/internal/user"
)

// Operation reads or mutates the store and reports the outcome.
type Operation func(s *store.Store, req payload.Request) payload.Result

// Route binds one method on one template to an operation.
type Route struct {
	Template  route.Template
	Method    string
	Name      string
	Operation Operation
}

// Mutates reports whether the route may change the store.
func (r Route) Mutates() bool {
	return r.Method != http.MethodGet
}

// Match is a routed request waiting to be executed.
type Match struct {
	Route  Route
	Params route.Params
}

// CommitHook receives the store state after every mutating operation. It
// runs while the router lock is held.
type CommitHook func(snap store.Snapshot)

type Option func(*Router)

// WithCommitHook installs fn to run after every mutating operation.
func WithCommitHook(fn CommitHook) Option {
	return func(r *Router) {
		r.commit = fn
	}
}

// Router owns the store. All access goes through a single lock so each
// operation runs to completion before the next one starts.
type Router struct {
	mu     sync.Mutex
	store  *store.Store
	commit CommitHook
	routes []Route
	table  map[route.Template]map[string]Route
}

// Table lists the routes the service exposes.
func Table() []Route {
	users, articles, comments := route.Users, route.Articles, route.Comments

	return []Route{
		{users, http.MethodPost, "CreateOrFetchUser", user.CreateOrFetch},
		{users.Member(), http.MethodGet, "GetUser", user.Get},

		{articles, http.MethodGet, "ListArticles", article.List},
		{articles, http.MethodPost, "CreateArticle", article.Create},
		{articles.Member(), http.MethodGet, "GetArticle", article.Get},
		{articles.Member(), http.MethodPut, "UpdateArticle", article.Update},
		{articles.Member(), http.MethodDelete, "DeleteArticle", article.Delete},
		{articles.Vote(route.Upvote), http.MethodPut, "UpvoteArticle", article.Upvote},
		{articles.Vote(route.Downvote), http.MethodPut, "DownvoteArticle", article.Downvote},

		{comments, http.MethodPost, "CreateComment", comment.Create},
		{comments.Member(), http.MethodPut, "UpdateComment", comment.Update},
		{comments.Member(), http.MethodDelete, "DeleteComment", comment.Delete},
		{comments.Vote(route.Upvote), http.MethodPut, "UpvoteComment", comment.Upvote},
		{comments.Vote(route.Downvote), http.MethodPut, "DownvoteComment", comment.Downvote},
	}
}

// New builds a router over s serving Table.
func New(s *store.Store, opts ...Option) *Router {
	r := &Router{
		store:  s,
		routes: Table(),
		table:  make(map[route.Template]map[string]Route),
	}
	for _, rt := range r.routes {
		if r.table[rt.Template] == nil {
			r.table[rt.Template] = make(map[string]Route)
		}
		r.table[rt.Template][rt.Method] = rt
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Routes returns the routes in declaration order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)

	return out
}

// Match selects the route for method and path. ok is false when the
// template or the method on it is not mapped.
func (r *Router) Match(method, path string) (Match, bool) {
	params := route.Parse(path)
	rt, ok := r.table[params.Template][method]
	if !ok {
		return Match{Params: params}, false
	}

	return Match{Route: rt, Params: params}, true
}

// Execute runs a matched route with the decoded body, if any.
func (r *Router) Execute(m Match, body *payload.Body) payload.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := m.Route.Operation(r.store, payload.Request{Params: m.Params, Body: body})
	if m.Route.Mutates() && r.commit != nil {
		r.commit(r.store.Snapshot())
	}

	return res
}

// Serve matches and executes in one step.
func (r *Router) Serve(method, path string, body *payload.Body) (payload.Result, bool) {
	m, ok := r.Match(method, path)
	if !ok {
		return payload.BadRequest, false
	}

	return r.Execute(m, body), true
}

// Snapshot returns a copy of the current store state.
func (r *Router) Snapshot() store.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.Snapshot()
}

// Restore merges snap into the store.
func (r *Router) Restore(snap store.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store.Restore(snap)
}
