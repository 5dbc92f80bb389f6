// Package trust derives credit limits from reputation scores and is
// the only writer of trust_score.
package trust

import (
	"context"

	"lendcircle-backend/internal/domain/uow"
	"lendcircle-backend/internal/domain/user"
)

const (
	MinScore = 0.0
	MaxScore = 850.0

	// limitMultiplier keeps CreditLimitFor monotonic in the score:
	// a default profile (500) may owe up to 1000.
	limitMultiplier = 2.0

	// Settlement rewards the borrower more than the lender: repaying on
	// time is the behavior the score exists to measure.
	settleBorrowerReward = 15.0
	settleLenderReward   = 5.0
	rejectPenalty        = 10.0
)

type Engine struct{ uow uow.UnitOfWork }

func NewEngine(u uow.UnitOfWork) *Engine { return &Engine{uow: u} }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CreditLimitFor maps a trust score to the maximum outstanding
// obligation a user may take on. Monotonic non-decreasing.
func CreditLimitFor(score float64) float64 {
	return clamp(score, MinScore, MaxScore) * limitMultiplier
}

// Tier is a display label for a score.
func Tier(score float64) string {
	switch {
	case score >= 750:
		return "excellent"
	case score >= 600:
		return "good"
	case score >= 400:
		return "neutral"
	default:
		return "low"
	}
}

// CheckLimitIn fails with user.ErrTrustLimitExceeded when the requested
// amount is beyond the caller's derived credit limit. Runs inside an
// existing unit of work so loan creation sees a consistent score.
func (e *Engine) CheckLimitIn(ctx context.Context, r uow.Repos, userID string, amount float64) error {
	p, err := r.Users.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if amount > CreditLimitFor(p.TrustScore) {
		return user.ErrTrustLimitExceeded
	}
	return nil
}

func (e *Engine) CheckLimit(ctx context.Context, userID string, amount float64) error {
	return e.uow.WithinTx(ctx, func(r uow.Repos) error {
		return e.CheckLimitIn(ctx, r, userID, amount)
	})
}

// OnSettledIn rewards both parties after an on-time settlement.
func (e *Engine) OnSettledIn(ctx context.Context, r uow.Repos, borrowerID, lenderID string) error {
	if err := adjust(ctx, r, borrowerID, settleBorrowerReward); err != nil {
		return err
	}
	return adjust(ctx, r, lenderID, settleLenderReward)
}

// OnRejectedIn penalizes the initiator of a declined loan.
func (e *Engine) OnRejectedIn(ctx context.Context, r uow.Repos, initiatorID string) error {
	return adjust(ctx, r, initiatorID, -rejectPenalty)
}

func adjust(ctx context.Context, r uow.Repos, userID string, delta float64) error {
	p, err := r.Users.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return r.Users.SetTrustScore(ctx, userID, clamp(p.TrustScore+delta, MinScore, MaxScore))
}
