// Package deadline lets slow routes, such as video uploads, outlive the
// server wide read and write timeouts.
package deadline

import (
	"net/http"
	"time"
)

// Extend pushes the connection read and write deadlines d into the future
// before the handler runs.
func Extend(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d > 0 {
				rc := http.NewResponseController(w)
				until := time.Now().Add(d)
				// recorders and some wrappers do not support deadlines
				_ = rc.SetReadDeadline(until)
				_ = rc.SetWriteDeadline(until)
			}
			next.ServeHTTP(w, r)
		})
	}
}
