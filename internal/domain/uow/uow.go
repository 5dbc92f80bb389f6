package uow

import (
	"context"

	"lendcircle-backend/internal/domain/friendship"
	"lendcircle-backend/internal/domain/loan"
	"lendcircle-backend/internal/domain/user"
)

type Repos struct {
	Users       user.Repository
	Loans       loan.Repository
	Friendships friendship.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: fetch the loan first, then pass it in. The fetched
	// row is a snapshot; transitions must still go through the
	// conditional Loans.Transition guard.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
