package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mymessage/storefront-gateway/pkg/logger"
)

// CartSessionCookie names the cookie that ties a browser to its cart.
const CartSessionCookie = "cart_session"

type sessionCtxKey struct{}

// WithCartSession stores a cart session id on the context. Exported for
// handler tests.
func WithCartSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sessionID)
}

// CartSessionFromContext returns the cart session id, or "" when the
// middleware did not run.
func CartSessionFromContext(ctx context.Context) string {
	if sessionID, ok := ctx.Value(sessionCtxKey{}).(string); ok {
		return sessionID
	}
	return ""
}

// CartSession assigns each browser a session id cookie and carries it on the
// request context. The cookie is session-scoped: no Max-Age, so the cart
// lives exactly as long as the browsing session.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(CartSessionCookie); err == nil {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					sessionID = cookie.Value
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CartSessionCookie,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
