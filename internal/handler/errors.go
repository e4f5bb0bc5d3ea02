package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinetour/internal/apperr"
)

// ErrorItem is one entry of the error envelope.
type ErrorItem struct {
	Message string `json:"message"`
}

// ErrorBody is the only error shape the API writes:
// {"errors":[{"message":"..."}]}.
type ErrorBody struct {
	Errors []ErrorItem `json:"errors"`
}

func envelope(msg string) ErrorBody {
	return ErrorBody{Errors: []ErrorItem{{Message: msg}}}
}

// NewHTTPErrorHandler renders every error returned by a handler, by the
// router (unknown route, wrong method) or by middleware in the envelope.
// Internal failures are logged with their cause and rendered without it.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, msg := describe(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"error", err)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, envelope(msg))
		}
		if werr != nil {
			logger.Error("write error response", "error", werr)
		}
	}
}

// describe maps err to a status and a user-visible message.
func describe(err error) (int, string) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return apperr.Status(ae), apperr.Message(ae)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			return he.Code, "Not found"
		case http.StatusMethodNotAllowed:
			return he.Code, "Method not allowed"
		case http.StatusBadRequest, http.StatusUnsupportedMediaType:
			return http.StatusBadRequest, "Invalid request body"
		case http.StatusServiceUnavailable:
			if msg, ok := he.Message.(string); ok && msg != http.StatusText(he.Code) {
				return he.Code, msg
			}
			return he.Code, "Service unavailable"
		}
		if he.Code >= http.StatusInternalServerError {
			return he.Code, "Internal server error"
		}
		return he.Code, http.StatusText(he.Code)
	}
	return http.StatusInternalServerError, "Internal server error"
}

// sessionToken reads the raw session cookie; a missing cookie is "".
func sessionToken(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}

// bindJSON binds the request body and turns any failure into a 400.
func bindJSON(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	return nil
}
