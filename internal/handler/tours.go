package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinetour/internal/auth"
	"github.com/iliyamo/cinetour/internal/model"
	"github.com/iliyamo/cinetour/internal/service"
)

type TourHandler struct {
	Tours  *service.TourService
	Guard  *auth.Guard
	Cookie string
}

func NewTourHandler(tours *service.TourService, guard *auth.Guard, cookie string) *TourHandler {
	if tours == nil || guard == nil {
		panic("nil dependency passed to NewTourHandler")
	}
	return &TourHandler{Tours: tours, Guard: guard, Cookie: cookie}
}

func (h *TourHandler) List(c echo.Context) error {
	tours, err := h.Tours.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tours)
}

// Create hosts a tour.  Any host field in the body is ignored.
func (h *TourHandler) Create(c echo.Context) error {
	var in model.TourCreate
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	in, err := service.NormalizeTour(in)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	actor, err := h.Guard.Authorize(ctx, sessionToken(c, h.Cookie))
	if err != nil {
		return err
	}
	detail, err := h.Tours.Create(ctx, actor, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *TourHandler) Delete(c echo.Context) error {
	id, err := auth.ParseIdentity(c.Param("tourId"))
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	actor, err := h.Guard.Authorize(ctx, sessionToken(c, h.Cookie))
	if err != nil {
		return err
	}
	t, err := h.Tours.Delete(ctx, actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}
