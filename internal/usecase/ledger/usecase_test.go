package ledger

import (
	"context"
	"errors"
	"testing"

	"lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/testutil/memuow"
)

func seedTwoAccounts(t *testing.T) *memuow.Store {
	t.Helper()
	st := memuow.New()
	st.AddUser(user.Profile{UserID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Username: "alice", Balance: 1000})
	st.AddUser(user.Profile{UserID: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Username: "bob", Balance: 500})
	return st
}

func TestTransfer_ConservesTotal(t *testing.T) {
	st := seedTwoAccounts(t)
	uc := NewUsecase(st)

	res, err := uc.Transfer(context.Background(), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", 100)
	if err != nil {
		t.Fatalf("Transfer err: %v", err)
	}
	if res.FromBalance != 900 || res.ToBalance != 600 {
		t.Fatalf("balances = %v/%v, want 900/600", res.FromBalance, res.ToBalance)
	}
	if res.FromBalance+res.ToBalance != 1500 {
		t.Fatalf("total not conserved: %v", res.FromBalance+res.ToBalance)
	}
}

func TestTransfer_AllowsNegativeBalance(t *testing.T) {
	// No liquidity floor: risk is gated by the trust limit, not the
	// balance (documented system invariant).
	st := seedTwoAccounts(t)
	uc := NewUsecase(st)

	res, err := uc.Transfer(context.Background(), "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 700)
	if err != nil {
		t.Fatalf("Transfer err: %v", err)
	}
	if res.FromBalance != -200 {
		t.Fatalf("from balance = %v, want -200", res.FromBalance)
	}
}

func TestTransfer_RejectsNonPositiveAmount(t *testing.T) {
	st := seedTwoAccounts(t)
	uc := NewUsecase(st)

	for _, amount := range []float64{0, -5} {
		if _, err := uc.Transfer(context.Background(), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", amount); !errors.Is(err, ErrNonPositiveAmount) {
			t.Fatalf("amount=%v: err = %v, want ErrNonPositiveAmount", amount, err)
		}
	}
}

func TestTransfer_RejectsSameAccount(t *testing.T) {
	st := seedTwoAccounts(t)
	uc := NewUsecase(st)

	if _, err := uc.Transfer(context.Background(), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 10); !errors.Is(err, ErrSameAccount) {
		t.Fatalf("err = %v, want ErrSameAccount", err)
	}
}

func TestTransfer_UnknownAccountRollsBack(t *testing.T) {
	st := seedTwoAccounts(t)
	uc := NewUsecase(st)

	_, err := uc.Transfer(context.Background(), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "cccccccccccccccccccccccccccccccc", 100)
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("err = %v, want user.ErrNotFound", err)
	}

	// The debit side must not stick when the credit side fails.
	p, _ := st.User("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	if p.Balance != 1000 {
		t.Fatalf("debit leaked: balance = %v, want 1000", p.Balance)
	}
}
