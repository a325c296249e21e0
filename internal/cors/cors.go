// Package cors answers preflight requests and stamps every response with
// permissive CORS headers.
package cors

import "net/http"

const (
	allowOrigin  = "*"
	allowMethods = "POST, GET, PUT, DELETE, OPTIONS"
	allowHeaders = "X-Requested-With, X-HTTP-Method-Override, Content-Type, Accept"
	maxAge       = "86400" // one day
)

// Handler is a chi-compatible middleware. OPTIONS requests never reach next.
func Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", allowHeaders)

		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Credentials", "false")
			h.Set("Access-Control-Max-Age", maxAge)
			w.WriteHeader(http.StatusOK)

			return
		}

		next.ServeHTTP(w, r)
	})
}
