package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"travel-planner/internal/infra/metrics"
)

func withUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, id)
}

// requestLogger emits one structured line per request and feeds the HTTP
// metrics. The route pattern, not the raw path, keeps label cardinality low.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		metrics.ObserveHTTP(r.Method, pattern, ww.Status(), elapsed.Seconds()*1000)

		s.log.Info().
			Str("method", r.Method).
			Str("path", pattern).
			Int("status", ww.Status()).
			Dur("elapsed", elapsed).
			Msg("http request")
	})
}
