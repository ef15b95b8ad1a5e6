// Package server adapts HTTP requests to the router and renders the
// results.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/tina-pina/the-scoop/internal/payload"
	"github.com/tina-pina/the-scoop/internal/router"
)

const unmatchedRoute = "unmatched"

// Recorder receives one observation per dispatched request.
type Recorder interface {
	Record(ctx context.Context, route, method string, status int, elapsed time.Duration)
}

type Server struct {
	router  *router.Router
	log     *zap.SugaredLogger
	metrics Recorder
}

// New returns a server over rt. metrics may be nil.
func New(rt *router.Router, log *zap.SugaredLogger, metrics Recorder) *Server {
	return &Server{router: rt, log: log, metrics: metrics}
}

// Routes builds the HTTP handler. Every template is registered with chi
// so route patterns show up in docs and logs, but any request chi cannot
// place still reaches dispatch: the router alone decides what matches.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	for _, rt := range s.router.Routes() {
		r.MethodFunc(rt.Method, rt.Template.Pattern(), s.dispatch)
	}
	r.NotFound(s.dispatch)
	r.MethodNotAllowed(s.dispatch)

	return r
}

// RoutesDoc renders the route table as markdown.
func (s *Server) RoutesDoc() string {
	return docgen.MarkdownRoutesDoc(s.Routes(), docgen.MarkdownOpts{
		ProjectPath: "github.com/tina-pina/the-scoop",
		Intro:       "Routes served by the scoop API.",
	})
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := LoggerFromContext(r.Context())

	m, ok := s.router.Match(r.Method, r.URL.Path)
	if !ok {
		log.Debugw("no route", "template", m.Params.Template.String())
		w.WriteHeader(http.StatusBadRequest)
		s.observe(r, unmatchedRoute, http.StatusBadRequest, start)

		return
	}

	body, err := decodeBody(r)
	if err != nil {
		log.Infow("rejecting request body", "route", m.Route.Name, "error", err)
		w.WriteHeader(http.StatusBadRequest)
		s.observe(r, m.Route.Template.String(), http.StatusBadRequest, start)

		return
	}

	res := s.router.Execute(m, body)
	log.Debugw("operation done", "route", m.Route.Name, "status", res.Status)

	if res.Body == nil {
		w.WriteHeader(res.Status)
	} else {
		render.Status(r, res.Status)
		render.JSON(w, r, res.Body)
	}
	s.observe(r, m.Route.Template.String(), res.Status, start)
}

// decodeBody reads the JSON body of methods that carry one. An empty body
// is reported as nil.
func decodeBody(r *http.Request) (*payload.Body, error) {
	if r.Method == http.MethodGet || r.Method == http.MethodDelete {
		return nil, nil
	}

	var body payload.Body
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, err
	}

	return &body, nil
}

func (s *Server) observe(r *http.Request, route string, status int, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.Record(r.Context(), route, r.Method, status, time.Since(start))
}

// DiagRoutes serves the scrape endpoint and a liveness probe.
func DiagRoutes(metrics http.Handler) chi.Router {
	r := chi.NewRouter()
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("pong"))
		if err != nil {
			LoggerFromContext(r.Context()).Errorw(err.Error())
		}
	})

	return r
}
