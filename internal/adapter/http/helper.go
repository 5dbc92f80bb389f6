package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	friendshipDomain "lendcircle-backend/internal/domain/friendship"
	loanDomain "lendcircle-backend/internal/domain/loan"
	userDomain "lendcircle-backend/internal/domain/user"
)

// HeaderUserID carries the authenticated caller's public id. Identity
// is established upstream; this service only needs the stable id.
const HeaderUserID = "Ax-User-Id"

func callerID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
	return id, reHex32.MatchString(id)
}

// statusFor maps the domain error taxonomy onto HTTP codes. Unknown
// errors fall through to 400: core operations return discriminated
// errors, so anything else is bad input surfaced by a usecase.
func statusFor(err error) int {
	switch {
	case errors.Is(err, userDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrCounterpartyNotFound),
		errors.Is(err, friendshipDomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, friendshipDomain.ErrDuplicateRequest),
		errors.Is(err, friendshipDomain.ErrNotPending):
		return http.StatusConflict
	case errors.Is(err, userDomain.ErrTrustLimitExceeded):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func errJSON(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
