package http

import (
	"net/http"

	"lendcircle-backend/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
)

type LedgerHandler struct{ uc *ledger.Usecase }

func NewLedgerHandler(uc *ledger.Usecase) *LedgerHandler { return &LedgerHandler{uc: uc} }

type transferReq struct {
	ToUserID string  `json:"to_user_id" validate:"required,hex32"`
	Amount   float64 `json:"amount"     validate:"required,gt=0,dec2"`
}

// Transfer moves money directly between two balances, outside any loan
// (top-ups between friends, manual settlements).
func (h *LedgerHandler) Transfer(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req transferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.Transfer(c.Request().Context(), uid, req.ToUserID, req.Amount)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
