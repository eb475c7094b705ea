package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// panicBody matches the API's error envelope so a recovered panic looks the
// same on the wire as any other internal error.
const panicBody = `{"error":{"code":"INTERNAL_ERROR","message":"an internal error occurred"}}`

// Recovery converts a handler panic into a 500 response so a single bad
// request cannot take the process down.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				l.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("stack", string(debug.Stack())),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(panicBody))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
