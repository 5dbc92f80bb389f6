package http

import (
	"net/http"

	"lendcircle-backend/internal/usecase/friendship"

	"github.com/labstack/echo/v4"
)

type FriendshipHandler struct{ uc *friendship.Usecase }

func NewFriendshipHandler(uc *friendship.Usecase) *FriendshipHandler {
	return &FriendshipHandler{uc: uc}
}

type friendRequestReq struct {
	Username string `json:"username" validate:"required,uname"`
}

func (h *FriendshipHandler) RequestFriend(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req friendRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Request(c.Request().Context(), uid, req.Username)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *FriendshipHandler) RespondFriend(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req respondReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.Respond(c.Request().Context(), c.Param("friendship_id"), uid, *req.Accept); err != nil {
		return errJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FriendshipHandler) ListFriends(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	list, err := h.uc.ListFor(c.Request().Context(), uid)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
