package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/auth"
	"github.com/iliyamo/cinetour/internal/model"
	"github.com/iliyamo/cinetour/internal/service"
)

// ProfileHandler serves /profile.  There is no id in the path: the session
// decides whose profile is read or changed.
type ProfileHandler struct {
	Profiles *service.ProfileService
	Guard    *auth.Guard
	Cookie   string
}

func NewProfileHandler(profiles *service.ProfileService, guard *auth.Guard, cookie string) *ProfileHandler {
	if profiles == nil || guard == nil {
		panic("nil dependency passed to NewProfileHandler")
	}
	return &ProfileHandler{Profiles: profiles, Guard: guard, Cookie: cookie}
}

// Get returns {user, profile} for the session's identity.  A missing
// session is reported as 400 on this route.
func (h *ProfileHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := h.Guard.Authorize(ctx, sessionToken(c, h.Cookie))
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			return apperr.BadRequest("No valid session")
		}
		return err
	}
	view, err := h.Profiles.Get(ctx, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Update validates the body, then authorizes, then persists.
func (h *ProfileHandler) Update(c echo.Context) error {
	var upd model.ProfileUpdate
	if err := bindJSON(c, &upd); err != nil {
		return err
	}
	upd, err := service.NormalizeProfile(upd)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	actor, err := h.Guard.Authorize(ctx, sessionToken(c, h.Cookie))
	if err != nil {
		return err
	}
	user, err := h.Profiles.Update(ctx, actor, upd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := h.Guard.Authorize(ctx, sessionToken(c, h.Cookie))
	if err != nil {
		return err
	}
	user, err := h.Profiles.Delete(ctx, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
