package middleware

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Headers": strings.Join([]string{
		"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization",
		AuthTokenHeader, "MCP-Protocol-Version", "Mcp-Session-Id",
	}, ", "),
	"Access-Control-Allow-Methods": "GET, POST, DELETE, OPTIONS",
	"Access-Control-Max-Age":       "600",
}

// Cors lets the configured browser origins read the stats API. The MCP
// endpoint accepts any origin (inspector tools run on localhost). Requests
// without an Origin header are not cross-origin and pass untouched.
func Cors(allowedOrigins ...string) func(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimSuffix(o, "/")] = struct{}{}
	}

	originAllowed := func(origin, path string) bool {
		if strings.HasPrefix(path, "/mcp") {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			if !originAllowed(origin, r.URL.Path) {
				log.Warnf("cors: origin [%s] not allowed for [%s]", origin, r.URL.Path)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			for k, v := range corsHeaders {
				w.Header().Set(k, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}
