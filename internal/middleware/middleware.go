package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rs/xid"
	handlers "polyglotCMS/internal/handler"
	"polyglotCMS/internal/service"
)

type Middleware func(http.Handler) http.Handler

// SessionCookieName - имя cookie с токеном сессии
const SessionCookieName = "session_token"

// AuthMiddleware verifies the session token and adds the identity to
// the request context. The token comes either from the Authorization
// header or from the session cookie.
func AuthMiddleware(authService service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skipping public endpoints
			if isPublicRequest(r) {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := extractToken(r)
			if tokenString == "" {
				handlers.WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
				return
			}

			identity, err := authService.ResolveSession(tokenString)
			if err != nil {
				handlers.WriteError(w, "Недействительный токен", http.StatusUnauthorized)
				return
			}

			// Adding the identity to the context
			ctx := context.WithValue(r.Context(), "identity", identity)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isPublicRequest(r *http.Request) bool {
	publicPaths := []string{
		"/api/auth/signup",
		"/api/auth/session",
		"/health",
		"/",
	}

	for _, path := range publicPaths {
		if r.URL.Path == path {
			return true
		}
	}

	// locale catalogs are public
	if strings.HasPrefix(r.URL.Path, "/api/messages/") {
		return true
	}

	// post reads are public, mutations are not
	if r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/posts") {
		return true
	}

	return false
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Checking the "Bearer <token>" format
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := xid.New().String()
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("[%s] %s %s (%s)", requestID, r.Method, r.RequestURI, time.Since(start))
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
