package auth

import (
	"crypto/subtle"
	"net/http"
)

// BasicAuth guards operator endpoints such as /metrics.
func BasicAuth(username, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || username == "" {
				requireBasic(w)
				return
			}

			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
			if !userOK || !passOK {
				requireBasic(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requireBasic(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="RENZA Admin"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
