package profile

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"lendcircle-backend/internal/domain/uow"
	"lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/usecase/trust"
	"lendcircle-backend/pkg/id"
)

var reUsername = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(u uow.UnitOfWork) *Usecase { return &Usecase{uow: u} }

type ProfileDTO struct {
	UserID      string  `json:"user_id"`
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	Balance     float64 `json:"balance"`
	TrustScore  float64 `json:"trust_score"`
	TrustTier   string  `json:"trust_tier"`
	CreditLimit float64 `json:"credit_limit"`
}

func toDTO(p *user.Profile) *ProfileDTO {
	return &ProfileDTO{
		UserID:      p.UserID,
		Username:    p.Username,
		FullName:    p.FullName,
		Balance:     p.Balance,
		TrustScore:  p.TrustScore,
		TrustTier:   trust.Tier(p.TrustScore),
		CreditLimit: trust.CreditLimitFor(p.TrustScore),
	}
}

// GetOrCreate auto-provisions a profile on first sign-in. Usernames are
// stored lowercase so lookups are case-insensitive by construction.
func (u *Usecase) GetOrCreate(ctx context.Context, username, fullName string) (*ProfileDTO, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !reUsername.MatchString(username) {
		return nil, errors.New("username must be 3-32 chars of a-z, 0-9 or _")
	}

	var dto *ProfileDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		existing, err := r.Users.GetByUsername(ctx, username)
		switch {
		case err == nil:
			dto = toDTO(existing)
			return nil
		case !errors.Is(err, user.ErrNotFound):
			return err
		}

		p := &user.Profile{
			UserID:     id.NewID32(),
			Username:   username,
			FullName:   fullName,
			TrustScore: user.DefaultTrustScore,
		}
		if err := r.Users.Create(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Resolve is the identity-resolution surface: handle in, profile out.
func (u *Usecase) Resolve(ctx context.Context, username string) (*ProfileDTO, error) {
	var dto *ProfileDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Users.GetByUsername(ctx, strings.ToLower(username))
		if err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*ProfileDTO, error) {
	var dto *ProfileDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Users.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
