package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// LogRequest logs every finished request at debug level. Server errors are
// logged as warnings so they show up without debug logging enabled.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			begin := time.Now()
			resp := &responseWriter{w, http.StatusOK}

			next.ServeHTTP(resp, r)

			entry := log.WithFields(log.Fields{
				"method":   r.Method,
				"route":    routeName(r),
				"status":   resp.statusCode,
				"duration": time.Since(begin).Round(time.Microsecond).String(),
			})
			if resp.statusCode >= http.StatusInternalServerError {
				entry.Warnf("%s %s failed", r.Method, r.URL.Path)
				return
			}
			entry.Debugf("%s %s", r.Method, r.URL.Path)
		})
	}
}
