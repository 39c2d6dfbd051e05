package middleware

import (
	"context"
	"errors"
	"net/http"

	"roastery-be/internal/auth"
	"roastery-be/internal/httpx"
	"roastery-be/internal/logger"

	"go.uber.org/zap"
)

// ErrIdentityNotFound is returned by IdentityStore implementations when the
// token's user no longer exists.
var ErrIdentityNotFound = errors.New("user not found")

// Identity is the slice of the user record the admin gate needs.
type Identity struct {
	ID      int
	Email   string
	IsAdmin bool
}

// IdentityStore resolves a verified token's user id to a stored identity.
type IdentityStore interface {
	IdentityByID(ctx context.Context, id int) (Identity, error)
}

// Gate holds the token codec and identity store behind the auth middleware.
// Both are injected; the gate has no ambient state.
type Gate struct {
	Codec *auth.Codec
	Store IdentityStore
}

func NewGate(codec *auth.Codec, store IdentityStore) *Gate {
	return &Gate{Codec: codec, Store: store}
}

// RequireUser rejects requests without a valid bearer token and attaches the
// resolved user id to the request context.
func (g *Gate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := g.verify(w, r)
		if !ok {
			return
		}

		next.ServeHTTP(w, r.WithContext(SetUserContext(r.Context(), userID)))
	})
}

// RequireAdmin verifies the token, then loads the user record and checks the
// admin flag. Token failures are reported before isAdmin is ever consulted.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := g.verify(w, r)
		if !ok {
			return
		}

		ident, err := g.Store.IdentityByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, ErrIdentityNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "user not found")
				return
			}
			logger.FromCtx(r.Context()).Error("admin gate: identity lookup failed",
				zap.Int("user_id", userID),
				zap.Error(err),
			)
			httpx.WriteError(w, http.StatusInternalServerError, "server error")
			return
		}

		if !ident.IsAdmin {
			httpx.WriteError(w, http.StatusForbidden, "admin access required")
			return
		}

		logger.FromCtx(r.Context()).Info("admin access",
			zap.Int("user_id", ident.ID),
			zap.String("email", ident.Email),
			zap.String("path", r.URL.Path),
		)

		ctx := SetAdminContext(r.Context(), ident.ID, ident.Email, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Gate) verify(w http.ResponseWriter, r *http.Request) (int, bool) {
	token := auth.ExtractBearer(r)
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "no token provided")
		return 0, false
	}

	userID, err := g.Codec.Parse(token)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid token")
		return 0, false
	}

	return userID, true
}
