package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/luongnho/pkg/logger"
)

type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type Middleware struct {
	AuthClient tokenVerifier
}

func NewMiddleware(client tokenVerifier) *Middleware {
	return &Middleware{AuthClient: client}
}

// context key
type contextKey string

const UIDKey contextKey = "uid"

const ClientIDHeader = "X-Client-ID"

// FirebaseAuth identifies the owner of persisted state by a Firebase ID token.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		// Verify ID Token
		token, err := m.AuthClient.VerifyIDToken(r.Context(), parts[1])
		if err != nil {
			logger.FromContext(r.Context()).Warn("id token rejected", "error", err)
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withOwner(r.Context(), token.UID)))
	})
}

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// ClientID identifies the owner by an opaque per-browser id. Used by the
// local build where there is no identity provider.
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(ClientIDHeader))
		if id == "" {
			http.Error(w, "missing "+ClientIDHeader+" header", http.StatusUnauthorized)
			return
		}
		if !clientIDPattern.MatchString(id) {
			http.Error(w, "invalid "+ClientIDHeader+" header", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withOwner(r.Context(), id)))
	})
}

func withOwner(ctx context.Context, uid string) context.Context {
	_, ctx = logger.With(context.WithValue(ctx, UIDKey, uid), "uid", uid)
	return ctx
}

// Helper to extract UID
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}
