package http

import (
	"net/http"

	domain "lendcircle-backend/internal/domain/loan"
	"lendcircle-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	Kind                 string  `json:"kind"                  validate:"required,oneof=lend borrow link"`
	CounterpartyUsername string  `json:"counterparty_username" validate:"required_unless=Kind link,omitempty,uname"`
	Amount               float64 `json:"amount"                validate:"required,gt=0,dec2"`
	InterestRate         float64 `json:"interest_rate"         validate:"gte=0,dec2"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		Kind:                 domain.Kind(req.Kind),
		RequesterID:          uid,
		CounterpartyUsername: req.CounterpartyUsername,
		Amount:               req.Amount,
		InterestRate:         req.InterestRate,
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// GetByShareToken backs the link-loan acceptance screen.
func (h *LoanHandler) GetByShareToken(c echo.Context) error {
	dto, err := h.uc.GetByShareToken(c.Request().Context(), c.Param("token"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	dtos, err := h.uc.ListForUser(c.Request().Context(), uid)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) AcceptLoan(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	dto, err := h.uc.Accept(c.Request().Context(), c.Param("loan_id"), uid)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type respondReq struct {
	Accept *bool `json:"accept" validate:"required"`
}

func (h *LoanHandler) RespondLoan(c echo.Context) error {
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
	dto, err := h.uc.Respond(c.Request().Context(), c.Param("loan_id"), uid, *req.Accept)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) SettleLoan(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	dto, err := h.uc.Settle(c.Request().Context(), c.Param("loan_id"), uid)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type splitBillReq struct {
	TotalAmount    float64  `json:"total_amount"    validate:"required,gt=0,dec2"`
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1,dive,hex32"`
}

func (h *LoanHandler) SplitBill(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req splitBillReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dtos, err := h.uc.SplitBill(c.Request().Context(), loan.SplitBillInput{
		RequesterID:    uid,
		TotalAmount:    req.TotalAmount,
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dtos)
}
