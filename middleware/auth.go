package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Authenticate resolves the backend-issued access token on a request into an
// explicit backend.Session and stores it in the request context. Requests
// without a valid token proceed anonymously; gating happens in
// RequireSession.
//
// When jwtSecret is empty (backend not configured) every request is treated
// as anonymous.
func Authenticate(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" || len(secret) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := parseSession(token, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects anonymous requests with a 401 that points the
// frontend at the sign-in surface.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"sign in to continue","redirect":"/account"}` + "\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromContext returns the session placed by Authenticate, if any.
func SessionFromContext(ctx context.Context) (*backend.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*backend.Session)
	if !ok || sess == nil || sess.UserID == "" {
		return nil, false
	}
	return sess, true
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func parseSession(token string, secret []byte) (*backend.Session, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	sess := &backend.Session{AccessToken: token}
	if sub, ok := claims["sub"].(string); ok {
		sess.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		sess.Email = email
	}
	if exp, ok := claims["exp"].(float64); ok {
		sess.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if sess.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return sess, nil
}
