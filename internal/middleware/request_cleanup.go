package middleware

import (
	"io"
	"net/http"
)

// DefaultMaxBodyBytes fits any credentials, session options or manual entry payload.
const DefaultMaxBodyBytes int64 = 64 << 10

// LimitAndDrainRequest caps the request body at maxBodyBytes, so a handler decoding JSON
// fails on oversized input instead of buffering it. Whatever the handler did not read is
// drained and the body closed, keeping the connection reusable.
func LimitAndDrainRequest(maxBodyBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody && maxBodyBytes > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}

			next.ServeHTTP(w, r)

			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
