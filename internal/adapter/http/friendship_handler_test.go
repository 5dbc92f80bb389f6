package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	userDomain "lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/event"
	"lendcircle-backend/internal/testutil/memuow"
	uc "lendcircle-backend/internal/usecase/friendship"

	"github.com/labstack/echo/v4"
)

func newFriendshipHandler(st *memuow.Store) *FriendshipHandler {
	return NewFriendshipHandler(uc.NewUsecase(st, event.NewDispatcher()))
}

func seedFriendWorld() *memuow.Store {
	st := memuow.New()
	st.AddUser(userDomain.Profile{UserID: aliceID, Username: "alice", FullName: "Alice A"})
	st.AddUser(userDomain.Profile{UserID: bobID, Username: "bob", FullName: "Bob B"})
	return st
}

func TestRequestFriend_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newFriendshipHandler(seedFriendWorld())

	req := httptest.NewRequest(stdhttp.MethodPost, "/friendships", mustJSON(map[string]any{"username": "bob"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderUserID, aliceID)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.RequestFriend(c); err != nil {
		t.Fatalf("RequestFriend error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	var got uc.FriendDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Username != "bob" || got.Status != "pending" {
		t.Fatalf("unexpected dto: %+v", got)
	}
}

func TestRequestFriend_DuplicateConflicts(t *testing.T) {
	e := newEchoWithValidator()
	h := newFriendshipHandler(seedFriendWorld())

	send := func(from string) *httptest.ResponseRecorder {
		target := "bob"
		if from == bobID {
			target = "alice"
		}
		req := httptest.NewRequest(stdhttp.MethodPost, "/friendships", mustJSON(map[string]any{"username": target}))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(HeaderUserID, from)
		rec := httptest.NewRecorder()
		if err := h.RequestFriend(e.NewContext(req, rec)); err != nil {
			t.Fatalf("RequestFriend error: %v", err)
		}
		return rec
	}

	if rec := send(aliceID); rec.Code != stdhttp.StatusCreated {
		t.Fatalf("first request = %d, want 201", rec.Code)
	}
	// Reciprocal request hits the unordered-pair uniqueness
	if rec := send(bobID); rec.Code != stdhttp.StatusConflict {
		t.Fatalf("reciprocal request = %d, want 409; body=%s", rec.Code, rec.Body.String())
	}
}

func TestRespondFriend_AcceptAndList(t *testing.T) {
	e := newEchoWithValidator()
	st := seedFriendWorld()
	h := newFriendshipHandler(st)

	req := httptest.NewRequest(stdhttp.MethodPost, "/friendships", mustJSON(map[string]any{"username": "bob"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderUserID, aliceID)
	rec := httptest.NewRecorder()
	if err := h.RequestFriend(e.NewContext(req, rec)); err != nil {
		t.Fatalf("RequestFriend error: %v", err)
	}
	var created uc.FriendDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad json: %v", err)
	}

	req = httptest.NewRequest(stdhttp.MethodPost, "/friendships/"+created.FriendshipID+"/respond", mustJSON(map[string]any{"accept": true}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderUserID, bobID)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("friendship_id")
	c.SetParamValues(created.FriendshipID)

	if err := h.RespondFriend(c); err != nil {
		t.Fatalf("RespondFriend error: %v", err)
	}
	if rec.Code != stdhttp.StatusNoContent {
		t.Fatalf("status = %d, want 204; body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(stdhttp.MethodGet, "/friendships", nil)
	req.Header.Set(HeaderUserID, aliceID)
	rec = httptest.NewRecorder()
	if err := h.ListFriends(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ListFriends error: %v", err)
	}
	var list uc.FriendList
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(list.Accepted) != 1 || list.Accepted[0].Username != "bob" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestRespondFriend_NonRecipient(t *testing.T) {
	e := newEchoWithValidator()
	st := seedFriendWorld()
	h := newFriendshipHandler(st)

	req := httptest.NewRequest(stdhttp.MethodPost, "/friendships", mustJSON(map[string]any{"username": "bob"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderUserID, aliceID)
	rec := httptest.NewRecorder()
	if err := h.RequestFriend(e.NewContext(req, rec)); err != nil {
		t.Fatalf("RequestFriend error: %v", err)
	}
	var created uc.FriendDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad json: %v", err)
	}

	// The sender cannot accept their own request
	req = httptest.NewRequest(stdhttp.MethodPost, "/friendships/"+created.FriendshipID+"/respond", mustJSON(map[string]any{"accept": true}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderUserID, aliceID)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("friendship_id")
	c.SetParamValues(created.FriendshipID)

	if err := h.RespondFriend(c); err != nil {
		t.Fatalf("RespondFriend error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body=%s", rec.Code, rec.Body.String())
	}
}
