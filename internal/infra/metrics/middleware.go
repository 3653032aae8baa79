package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zenazn/goji/web/mutil"
)

// unmatchedPath labels requests no admin route handled.
const unmatchedPath = "unmatched"

// Middleware records request count and latency per admin route pattern.
// The mux sets r.Pattern on the request it receives, so it must sit
// directly in front of the mux.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := mutil.WrapWriter(w)
		next.ServeHTTP(lw, r)

		path := r.Pattern
		if path == "" {
			path = unmatchedPath
		}
		status := strconv.Itoa(lw.Status())

		recordHTTPRequest(r.Method, path, status)
		recordHTTPDuration(r.Method, path, status, time.Since(start).Seconds())
	})
}
