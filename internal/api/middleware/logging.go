package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logging пишет строку лога на каждый запрос
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s - %d in %s (%s)", r.Method, r.URL.Path, rec.status, elapsed, clientIP(r))
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s - %d in %s (%s)", r.Method, r.URL.Path, rec.status, elapsed, clientIP(r))
			default:
				logger.Info("%s %s - %d in %s (%s)", r.Method, r.URL.Path, rec.status, elapsed, clientIP(r))
			}
		})
	}
}
