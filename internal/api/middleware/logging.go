package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
)

// Logging пишет одну строку на каждый обработанный запрос
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			format := "%s %s - status=%d, duration=%s, requestId=%s"
			args := []interface{}{r.Method, r.URL.Path, rec.status, time.Since(start), RequestIDFromContext(r.Context())}
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error(format, args...)
			case rec.status >= http.StatusBadRequest:
				logger.Warn(format, args...)
			default:
				logger.Info(format, args...)
			}
		})
	}
}

// Recovery превращает панику обработчика в 500
func Recovery(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error("%s %s - panic: %v, requestId=%s\n%s",
						r.Method, r.URL.Path, p, RequestIDFromContext(r.Context()), debug.Stack())
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
