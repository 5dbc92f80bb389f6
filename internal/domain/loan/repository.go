package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByShareToken(ctx context.Context, token string) (*Loan, error)
	ListForUser(ctx context.Context, userID string) ([]Loan, error)
	// Transition conditionally moves a loan from one status to another,
	// optionally setting extra columns in the same statement. Returns
	// false when the row was no longer in the expected source status —
	// the guard against concurrent accept/respond races.
	Transition(ctx context.Context, loanID string, from, to Status, set map[string]any) (bool, error)
	Save(ctx context.Context, l *Loan) error
}
