package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"smartrail/monitoring"

	"github.com/gorilla/mux"
)

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Capture the status code for the log line and metrics
		wrw := &responseWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(wrw, r)

		duration := time.Since(start)
		log.Printf(
			"%s - %s %s %d %v",
			r.RemoteAddr,
			r.Method,
			r.URL.Path,
			wrw.status,
			duration,
		)

		path := routePattern(r)
		monitoring.RequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrw.status)).Inc()
		monitoring.RequestDuration.WithLabelValues(r.Method, path).Observe(duration.Seconds())
	})
}

// routePattern reports the mux route template so metrics don't explode
// into one series per train number.
func routePattern(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
