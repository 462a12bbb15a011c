package middleware

import (
	"fmt"
	"net/http"

	"github.com/rishabhsai/RishBOT/internal/observability"
)

// Recover turns a panic in a downstream handler into a 500 JSON response.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // net/http expects this one to propagate
					panic(rec)
				}

				observability.FromContext(r.Context()).Error("handler panicked",
					observability.String("panic", fmt.Sprint(rec)),
					observability.String("path", r.URL.Path),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal server error"}` + "\n"))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
