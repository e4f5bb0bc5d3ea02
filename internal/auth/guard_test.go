package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/model"
)

type lookupFunc func(ctx context.Context, hash string) (model.User, bool, error)

func (f lookupFunc) UserBySessionHash(ctx context.Context, hash string) (model.User, bool, error) {
	return f(ctx, hash)
}

func sessionsFor(token string, user model.User) lookupFunc {
	want := HashToken(token)
	return func(_ context.Context, hash string) (model.User, bool, error) {
		if hash == want {
			return user, true, nil
		}
		return model.User{}, false, nil
	}
}

func TestAuthorizeResolvesIdentity(t *testing.T) {
	g := NewGuard(sessionsFor("abc", model.User{ID: 42, Username: "mara"}))

	user, err := g.Authorize(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), user.ID)
}

func TestAuthorizeRejectsMissingAndUnknownTokens(t *testing.T) {
	calls := 0
	g := NewGuard(lookupFunc(func(context.Context, string) (model.User, bool, error) {
		calls++
		return model.User{}, false, nil
	}))

	_, err := g.Authorize(context.Background(), "  ")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Equal(t, 0, calls, "empty token must not reach the store")

	_, err = g.Authorize(context.Background(), "nope")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Equal(t, 1, calls)
}

func TestAuthorizeSurfacesStoreFailure(t *testing.T) {
	g := NewGuard(lookupFunc(func(context.Context, string) (model.User, bool, error) {
		return model.User{}, false, errors.New("connection refused")
	}))
	_, err := g.Authorize(context.Background(), "abc")
	assert.ErrorIs(t, err, apperr.ErrInternal)
}

func TestAuthorizeOwner(t *testing.T) {
	g := NewGuard(sessionsFor("abc", model.User{ID: 42}))

	actor, err := g.AuthorizeOwner(context.Background(), "abc", 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), actor.ID)

	_, err = g.AuthorizeOwner(context.Background(), "abc", 7)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestHashTokenIsStableHex(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.Len(t, HashToken("abc"), 64)
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
}

func TestNewGuardPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewGuard(nil) })
}
