package mysql

import (
	"context"
	"errors"

	userDomain "lendcircle-backend/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, p *userDomain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.Profile, error) {
	var out userDomain.Profile
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.Profile, error) {
	var out userDomain.Profile
	res := r.db.WithContext(ctx).Where("username = ?", username).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	return &out, res.Error
}

// AdjustBalance is a relative single-statement update; the row write
// serializes concurrent transfers on the same account.
func (r *UserRepository) AdjustBalance(ctx context.Context, userID string, delta float64) error {
	res := r.db.WithContext(ctx).Model(&userDomain.Profile{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return userDomain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetTrustScore(ctx context.Context, userID string, score float64) error {
	res := r.db.WithContext(ctx).Model(&userDomain.Profile{}).
		Where("user_id = ?", userID).
		Update("trust_score", score)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return userDomain.ErrNotFound
	}
	return nil
}
