package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinetour/internal/auth"
	"github.com/iliyamo/cinetour/internal/service"
)

// FriendHandler serves /friends/:userId.  The path names the owner of the
// friend list; mutations additionally need the owner's own session.
type FriendHandler struct {
	Friends *service.FriendService
	Guard   *auth.Guard
	Cookie  string
}

func NewFriendHandler(friends *service.FriendService, guard *auth.Guard, cookie string) *FriendHandler {
	if friends == nil || guard == nil {
		panic("nil dependency passed to NewFriendHandler")
	}
	return &FriendHandler{Friends: friends, Guard: guard, Cookie: cookie}
}

type friendRequest struct {
	FriendID *float64 `json:"friendId"`
}

// List returns the owner's friends.  No session is required.
func (h *FriendHandler) List(c echo.Context) error {
	ownerID, err := auth.ParseIdentity(c.Param("userId"))
	if err != nil {
		return err
	}
	friends, err := h.Friends.List(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friends)
}

// Add creates the edge userId -> friendId.
func (h *FriendHandler) Add(c echo.Context) error {
	ownerID, friendID, err := h.parseEdge(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	actor, err := h.Guard.AuthorizeOwner(ctx, sessionToken(c, h.Cookie), ownerID)
	if err != nil {
		return err
	}
	edge, err := h.Friends.Add(ctx, ownerID, friendID, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, edge)
}

// Remove deletes the edge userId -> friendId and returns it; 404 when
// there was no such edge.
func (h *FriendHandler) Remove(c echo.Context) error {
	ownerID, friendID, err := h.parseEdge(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	actor, err := h.Guard.AuthorizeOwner(ctx, sessionToken(c, h.Cookie), ownerID)
	if err != nil {
		return err
	}
	edge, err := h.Friends.Remove(ctx, ownerID, friendID, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, edge)
}

// parseEdge validates the path and the body before any store access.
func (h *FriendHandler) parseEdge(c echo.Context) (uint64, uint64, error) {
	ownerID, err := auth.ParseIdentity(c.Param("userId"))
	if err != nil {
		return 0, 0, err
	}
	var req friendRequest
	if err := bindJSON(c, &req); err != nil {
		return 0, 0, err
	}
	friendID, err := service.FriendID(ownerID, req.FriendID)
	if err != nil {
		return 0, 0, err
	}
	return ownerID, friendID, nil
}
