// Package handler exposes the HTTP handlers.  Handlers parse and validate
// input, call the guard where a session is needed and delegate to the
// services; every failure is returned to echo and rendered by the error
// handler in errors.go.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/auth"
	"github.com/iliyamo/cinetour/internal/programme"
	"github.com/iliyamo/cinetour/internal/service"
)

// PublicHandler serves the listings that need no session.
type PublicHandler struct {
	Directory  *service.DirectoryService
	Programmes *service.ProgrammeService
}

func NewPublicHandler(dir *service.DirectoryService, programmes *service.ProgrammeService) *PublicHandler {
	if dir == nil || programmes == nil {
		panic("nil service passed to NewPublicHandler")
	}
	return &PublicHandler{Directory: dir, Programmes: programmes}
}

// GetCinemas returns every cinema.
func (h *PublicHandler) GetCinemas(c echo.Context) error {
	cinemas, err := h.Directory.Cinemas(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cinemas)
}

// GetUsers returns the public fields of every identity.
func (h *PublicHandler) GetUsers(c echo.Context) error {
	users, err := h.Directory.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetProgrammes lists upcoming screenings.  Optional filters: day (as
// rendered, e.g. "Thu Oct 15"), cinema, film and english=true.
func (h *PublicHandler) GetProgrammes(c echo.Context) error {
	var f programme.Filter
	err := echo.QueryParamsBinder(c).
		String("day", &f.Day).
		String("cinema", &f.Cinema).
		String("film", &f.Film).
		Bool("english", &f.EnglishOnly).
		BindError()
	if err != nil {
		return apperr.BadRequest("Invalid filter")
	}
	listing, err := h.Programmes.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// GetProgramme returns one reduced screening.
func (h *PublicHandler) GetProgramme(c echo.Context) error {
	id, err := auth.ParseIdentity(c.Param("programmeId"))
	if err != nil {
		return err
	}
	p, err := h.Programmes.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
