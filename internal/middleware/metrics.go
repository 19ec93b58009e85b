package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kanekanefy/qwerty-learner/internal/metrics"
	"github.com/kanekanefy/qwerty-learner/internal/router"
)

// Metrics records request counts and latency. The path label uses the matched
// route pattern, not the raw URL, to keep label cardinality bounded.
func Metrics() router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			statusWriter := &httpStatusWriter{inner: w}
			t := time.Now()

			next.ServeHTTP(statusWriter, r)

			path := r.Pattern
			if path == "" {
				path = "unmatched"
			}
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(statusWriter.Status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(t).Seconds())
		})
	}
}
