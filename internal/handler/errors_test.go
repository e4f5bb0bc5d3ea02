package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/logging"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.BadRequest("Invalid id"), http.StatusBadRequest, "Invalid id"},
		{apperr.Unauthorized("Unauthorized"), http.StatusForbidden, "Unauthorized"},
		{apperr.Conflict("Already friends"), http.StatusConflict, "Already friends"},
		{apperr.Internal("list users", errors.New("dial tcp: refused")), http.StatusInternalServerError, "Internal server error"},
		{echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method not allowed"},
		{echo.ErrUnsupportedMediaType, http.StatusBadRequest, "Invalid request body"},
		{echo.ErrServiceUnavailable, http.StatusServiceUnavailable, "Service unavailable"},
		{errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		status, msg := describe(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.msg, msg, tc.err.Error())
	}
}

func TestHTTPErrorHandlerLogsCauseButHidesIt(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.New(logging.Config{Writer: &logs})

	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)
	e.GET("/users", func(echo.Context) error {
		return apperr.Internal("list users", errors.New("dial tcp 10.0.0.5:3306: refused"))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"errors":[{"message":"Internal server error"}]}`, rec.Body.String())
	assert.Contains(t, logs.String(), "10.0.0.5")
}

type pingFunc func(context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestReady(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logging.New(logging.Config{Writer: &bytes.Buffer{}}))
	healthy := true
	e.GET("/readyz", Ready(pingFunc(func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("down")
	})))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	healthy = false
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"errors":[{"message":"Database unavailable"}]}`, rec.Body.String())
}
