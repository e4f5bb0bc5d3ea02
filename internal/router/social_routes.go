package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinetour/internal/handler"
)

// SocialHandlers groups the handlers behind session checked routes.
type SocialHandlers struct {
	Friends *handler.FriendHandler
	Profile *handler.ProfileHandler
	Tours   *handler.TourHandler
}

// RegisterSocial registers friends, profile and tour routes.  limit wraps
// every mutating route.  Reads are never cached here because friend lists
// and tours change through these same routes.
func RegisterSocial(e *echo.Echo, h SocialHandlers, limit echo.MiddlewareFunc) {
	e.GET("/friends/:userId", h.Friends.List)
	e.POST("/friends/:userId", h.Friends.Add, limit)
	e.DELETE("/friends/:userId", h.Friends.Remove, limit)

	e.GET("/profile", h.Profile.Get)
	e.PUT("/profile", h.Profile.Update, limit)
	e.DELETE("/profile", h.Profile.Delete, limit)

	e.GET("/tours", h.Tours.List)
	e.POST("/tours", h.Tours.Create, limit)
	e.DELETE("/tours/:tourId", h.Tours.Delete, limit)
}
