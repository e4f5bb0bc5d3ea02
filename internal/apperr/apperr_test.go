package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{BadRequest("x"), http.StatusBadRequest},
		{Unauthorized("x"), http.StatusForbidden},
		{Forbidden("x"), http.StatusForbidden},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{&Error{Kind: ErrMethodNotAllowed, Message: "x"}, http.StatusMethodNotAllowed},
		{Internal("x", errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("x")), http.StatusNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestKindsWorkWithErrorsIs(t *testing.T) {
	err := fmt.Errorf("ctx: %w", Conflict("taken"))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestMessageHidesInternalCause(t *testing.T) {
	assert.Equal(t, "taken", Message(Conflict("taken")))
	assert.Equal(t, "Internal server error", Message(Internal("list friends", errors.New("dial tcp: refused"))))
	assert.Equal(t, "Internal server error", Message(errors.New("boom")))
}

func TestInternalUnwrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Internal("list friends", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list friends: dial tcp: refused", err.Error())
}
