package user

import "context"

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	// GetByUsername expects the caller to have lowercased the handle.
	GetByUsername(ctx context.Context, username string) (*Profile, error)
	// AdjustBalance applies a single-statement relative update
	// (balance = balance + delta). The Ledger usecase is the only
	// caller; no other path may write balance.
	AdjustBalance(ctx context.Context, userID string, delta float64) error
	// SetTrustScore overwrites the score. The Trust engine is the only
	// caller and owns clamping.
	SetTrustScore(ctx context.Context, userID string, score float64) error
}
