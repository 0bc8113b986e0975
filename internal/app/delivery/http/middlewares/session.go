package middlewares

import (
	"clinic-service/internal/pkg/constvars"
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// SessionOptional resolves the session from a bearer token or the session
// cookie. Requests without a live session continue anonymously; the role gate
// decides whether that is enough.
func (m *Middlewares) SessionOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.SessionService.ResolveToken(r.Context(), token)
		if err != nil {
			requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			m.Log.Error("Middlewares.SessionOptional error resolving session",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}
		if session == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionToken(r *http.Request) string {
	authHeader := r.Header.Get(constvars.HeaderAuthorization)
	if strings.HasPrefix(authHeader, constvars.AuthorizationBearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix))
	}
	cookie, err := r.Cookie(constvars.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
