package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vancomm/minesweeper/internal/metrics"
)

func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newStatusRecorder(w)
			next.ServeHTTP(wrapped, r)
			if wrapped.hijacked {
				return
			}
			metrics.RequestDuration.
				WithLabelValues(r.Method, strconv.Itoa(wrapped.statusCode)).
				Observe(time.Since(start).Seconds())
		})
	}
}
