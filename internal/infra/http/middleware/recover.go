package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Recover turns a panic into the JSON 500 written by fallback. It is chi's
// Recoverer with our envelope instead of a plain-text body.
func Recover(log logrus.FieldLogger, fallback http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				if entry := chimw.GetLogEntry(r); entry != nil {
					entry.Panic(rec, debug.Stack())
				} else {
					log.WithField("panic", fmt.Sprint(rec)).
						WithField("path", r.URL.Path).
						Error("request panicked")
				}

				fallback(w, r)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
