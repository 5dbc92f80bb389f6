package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	userDomain "lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/testutil/memuow"
	uc "lendcircle-backend/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
)

func TestTransfer_Success(t *testing.T) {
	e := newEchoWithValidator()
	st := memuow.New()
	st.AddUser(userDomain.Profile{UserID: aliceID, Username: "alice", Balance: 1000})
	st.AddUser(userDomain.Profile{UserID: bobID, Username: "bob", Balance: 500})
	h := NewLedgerHandler(uc.NewUsecase(st))

	req := httptest.NewRequest(stdhttp.MethodPost, "/transfers", mustJSON(map[string]any{
		"to_user_id": bobID, "amount": 250,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderUserID, aliceID)
	rec := httptest.NewRecorder()

	if err := h.Transfer(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Transfer error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	var res uc.TransferResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if res.FromBalance != 750 || res.ToBalance != 750 {
		t.Fatalf("balances = %v/%v, want 750/750", res.FromBalance, res.ToBalance)
	}
}

func TestTransfer_ValidationAndErrors(t *testing.T) {
	e := newEchoWithValidator()
	st := memuow.New()
	st.AddUser(userDomain.Profile{UserID: aliceID, Username: "alice", Balance: 1000})
	h := NewLedgerHandler(uc.NewUsecase(st))

	send := func(body map[string]any) *httptest.ResponseRecorder {
		req := httptest.NewRequest(stdhttp.MethodPost, "/transfers", mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(HeaderUserID, aliceID)
		rec := httptest.NewRecorder()
		if err := h.Transfer(e.NewContext(req, rec)); err != nil {
			t.Fatalf("Transfer error: %v", err)
		}
		return rec
	}

	if rec := send(map[string]any{"to_user_id": "short", "amount": 10}); rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Errorf("bad id: status = %d, want 422", rec.Code)
	}
	if rec := send(map[string]any{"to_user_id": bobID, "amount": -5}); rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Errorf("negative amount: status = %d, want 422", rec.Code)
	}
	// Well-formed but unknown recipient → 404 from the usecase
	if rec := send(map[string]any{"to_user_id": "cccccccccccccccccccccccccccccccc", "amount": 10}); rec.Code != stdhttp.StatusNotFound {
		t.Errorf("unknown recipient: status = %d, want 404", rec.Code)
	}
	// Self transfer → 400
	if rec := send(map[string]any{"to_user_id": aliceID, "amount": 10}); rec.Code != stdhttp.StatusBadRequest {
		t.Errorf("self transfer: status = %d, want 400", rec.Code)
	}
}
