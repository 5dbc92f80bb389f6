package mysql

import (
	"context"
	"time"

	loanDomain "lendcircle-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByShareToken(ctx context.Context, token string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("share_token = ?", token).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListForUser(ctx context.Context, userID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("lender_id = ? OR borrower_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

// Transition applies the conditional state change: the UPDATE only
// matches while the row still holds the expected source status, so of
// two racing callers exactly one sees RowsAffected == 1.
func (r *LoanRepository) Transition(ctx context.Context, loanID string, from, to loanDomain.Status, set map[string]any) (bool, error) {
	updates := map[string]any{
		"status":            to,
		"status_updated_at": time.Now().UTC(),
	}
	for k, v := range set {
		updates[k] = v
	}
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("loan_id = ? AND status = ?", loanID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
