package http

import (
	"net/http"

	"lendcircle-backend/internal/usecase/profile"

	"github.com/labstack/echo/v4"
)

type ProfileHandler struct{ uc *profile.Usecase }

func NewProfileHandler(uc *profile.Usecase) *ProfileHandler { return &ProfileHandler{uc: uc} }

type signInReq struct {
	Username string `json:"username"  validate:"required,uname"`
	FullName string `json:"full_name" validate:"required"`
}

// SignIn auto-provisions a profile on first use and is idempotent for
// returning users.
func (h *ProfileHandler) SignIn(c echo.Context) error {
	var req signInReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.GetOrCreate(c.Request().Context(), req.Username, req.FullName)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Resolve is the username → profile lookup used by clients before
// addressing a loan or friend request.
func (h *ProfileHandler) Resolve(c echo.Context) error {
	dto, err := h.uc.Resolve(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProfileHandler) Me(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	dto, err := h.uc.Get(c.Request().Context(), uid)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
