// Package auth resolves session tokens to identities and validates the
// identity parameters a request names.  It never reads request state
// itself: handlers pass the token and path values explicitly.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/model"
)

// SessionLookup is the session store contract.  It receives the token hash
// and reports ok=false when no valid (unexpired) session matches.
type SessionLookup interface {
	UserBySessionHash(ctx context.Context, tokenHash string) (model.User, bool, error)
}

// Guard authorizes mutating requests.
type Guard struct {
	sessions SessionLookup
}

// NewGuard panics on a nil lookup; a guard that cannot resolve sessions
// would reject every request.
func NewGuard(sessions SessionLookup) *Guard {
	if sessions == nil {
		panic("nil session lookup passed to NewGuard")
	}
	return &Guard{sessions: sessions}
}

// HashToken returns the SHA-256 hex digest under which a session token is
// stored.  The raw token only ever lives in the client's cookie.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Authorize resolves the session token to the acting identity.  A missing
// or unknown token yields an Unauthorized error; a store failure yields an
// Internal one.  Callers must use the returned user as the actor.
func (g *Guard) Authorize(ctx context.Context, token string) (model.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.User{}, apperr.Unauthorized("Unauthorized")
	}
	user, ok, err := g.sessions.UserBySessionHash(ctx, HashToken(token))
	if err != nil {
		return model.User{}, apperr.Internal("resolve session", err)
	}
	if !ok {
		return model.User{}, apperr.Unauthorized("Unauthorized")
	}
	return user, nil
}

// AuthorizeOwner is Authorize plus the ownership rule: the acting identity
// must be the owner of the resource being changed.
func (g *Guard) AuthorizeOwner(ctx context.Context, token string, ownerID uint64) (model.User, error) {
	actor, err := g.Authorize(ctx, token)
	if err != nil {
		return model.User{}, err
	}
	if actor.ID != ownerID {
		return model.User{}, apperr.Forbidden("You can only change your own resources")
	}
	return actor, nil
}
