package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type CtxKey int8

const (
	CtxKeyLogger CtxKey = iota
)

// LoggerFromContext returns the request-scoped logger, or a no-op logger
// outside a request.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	if log, ok := ctx.Value(CtxKeyLogger).(*zap.SugaredLogger); ok {
		return log
	}

	return zap.NewNop().Sugar()
}

// Logger puts a request-scoped logger on the context and logs every
// completed request.
func (s *Server) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := s.log.With(
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
		)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), CtxKeyLogger, log)))

		log.Infow("request completed",
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
		)
	})
}

// CORS allows any origin. Preflight requests are answered here and never
// reach an operation.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Credentials", "false")
			h.Set("Access-Control-Max-Age", "86400")
			h.Set("Access-Control-Allow-Headers", "X-Requested-With, X-HTTP-Method-Override, Content-Type, Accept")
			w.WriteHeader(http.StatusOK)

			return
		}

		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "X-Requested-With,content-type")
		next.ServeHTTP(w, r)
	})
}
