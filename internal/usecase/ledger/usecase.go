// Package ledger is the only writer of profile balances. Every money
// movement is a debit/credit pair inside one transaction.
package ledger

import (
	"context"
	"errors"

	"lendcircle-backend/internal/domain/uow"
)

var (
	ErrSameAccount       = errors.New("transfer endpoints must differ")
	ErrNonPositiveAmount = errors.New("transfer amount must be positive")
)

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(u uow.UnitOfWork) *Usecase { return &Usecase{uow: u} }

type TransferResult struct {
	FromBalance float64 `json:"from_balance"`
	ToBalance   float64 `json:"to_balance"`
}

// Transfer moves amount from one profile to the other, both sides or
// neither. Balances may go negative: the product gates risk through the
// trust limit, not through liquidity (see DESIGN.md).
func (u *Usecase) Transfer(ctx context.Context, fromID, toID string, amount float64) (*TransferResult, error) {
	var res *TransferResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		res, err = TransferIn(ctx, r, fromID, toID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// TransferIn is the transactional core, for callers that already hold a
// unit of work (loan activation and settlement run it alongside their
// status transition).
func TransferIn(ctx context.Context, r uow.Repos, fromID, toID string, amount float64) (*TransferResult, error) {
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if fromID == toID {
		return nil, ErrSameAccount
	}

	// Single-statement relative updates; the row write serializes
	// concurrent transfers touching the same account while disjoint
	// pairs proceed in parallel.
	if err := r.Users.AdjustBalance(ctx, fromID, -amount); err != nil {
		return nil, err
	}
	if err := r.Users.AdjustBalance(ctx, toID, amount); err != nil {
		return nil, err
	}

	from, err := r.Users.GetByUserID(ctx, fromID)
	if err != nil {
		return nil, err
	}
	to, err := r.Users.GetByUserID(ctx, toID)
	if err != nil {
		return nil, err
	}
	return &TransferResult{FromBalance: from.Balance, ToBalance: to.Balance}, nil
}
