package identity

import (
	"net/http"

	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/logger"
	"github.com/cyberquest/backend/internal/repository"
)

// Headers set by the external auth layer after it validates credentials.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserName = "X-User-Name"
)

// Middleware resolves the active user from request headers and mirrors the
// identity into the user repository on first sight. Requests without a user
// pass through; RequireUser gates the routes that need one.
func Middleware(users repository.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(HeaderUserID)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user := &domain.User{
				ID:          userID,
				DisplayName: r.Header.Get(HeaderUserName),
			}

			if err := users.Upsert(r.Context(), user); err != nil {
				// Mirror failure must not block the request; the record is
				// display-only
				logger.FromContext(r.Context()).Warn("Failed to mirror user", "userID", userID, "error", err)
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireUser rejects requests that carry no active user.
// Mutating progression routes fail closed behind this.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Error(w, domain.ErrMsgNoActiveUser, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
