package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vancomm/minesweeper-hint/internal/metrics"
)

// Instrument records request count and latency under the route pattern.
func Instrument(pattern string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := newStatusWriter(w)
		h.ServeHTTP(wrapped, r)
		metrics.HTTPDuration.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
		metrics.HTTPRequests.WithLabelValues(pattern, strconv.Itoa(wrapped.statusCode)).Inc()
	})
}
