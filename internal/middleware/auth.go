package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/gymbot/internal/telemetry/tracing"
	"github.com/2beens/gymbot/pkg"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const (
	AuthTokenHeader = "X-Gymbot-Token"

	verifiedTokenTTL = 10 * time.Minute
)

type AuthMiddlewareHandler struct {
	tokenHash   string
	publicPaths map[string]struct{}
	// sha256 of tokens that recently passed the bcrypt check
	verified *cache.Cache
}

// NewAuthMiddlewareHandler checks API tokens against a bcrypt hash (see
// pkg.HashToken). /health and the extra public paths need no token.
func NewAuthMiddlewareHandler(tokenHash string, publicPaths ...string) *AuthMiddlewareHandler {
	h := &AuthMiddlewareHandler{
		tokenHash:   tokenHash,
		publicPaths: map[string]struct{}{"/health": {}},
		verified:    cache.New(verifiedTokenTTL, 2*verifiedTokenTTL),
	}
	for _, p := range publicPaths {
		h.publicPaths[p] = struct{}{}
	}
	return h
}

// requestToken reads the gymbot header, falling back to a bearer token.
func requestToken(r *http.Request) string {
	if token := r.Header.Get(AuthTokenHeader); token != "" {
		return token
	}
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

func (h *AuthMiddlewareHandler) tokenValid(token string) bool {
	sum := sha256.Sum256([]byte(token))
	key := hex.EncodeToString(sum[:])
	if _, ok := h.verified.Get(key); ok {
		return true
	}
	if !pkg.CheckTokenHash(token, h.tokenHash) {
		return false
	}
	h.verified.SetDefault(key, struct{}{})
	return true
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			reject := func(reason string) {
				clientIP, _ := pkg.ReadUserIP(r)
				log.Debugf("auth: %s for %s %s from %s", reason, r.Method, r.URL.Path, clientIP)
				span.SetStatus(codes.Error, reason)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}

			switch _, public := h.publicPaths[r.URL.Path]; {
			case r.Method == http.MethodOptions:
				w.Header().Set("Allow", "GET, POST, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
			case public:
				next.ServeHTTP(w, r)
			default:
				token := requestToken(r)
				if token == "" {
					reject("missing token")
					return
				}
				if !h.tokenValid(token) {
					reject("invalid token")
					return
				}
				span.SetStatus(codes.Ok, "")
				next.ServeHTTP(w, r)
			}
		})
	}
}
