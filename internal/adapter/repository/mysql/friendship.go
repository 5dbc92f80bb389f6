package mysql

import (
	"context"
	"errors"

	friendshipDomain "lendcircle-backend/internal/domain/friendship"

	"gorm.io/gorm"
)

type FriendshipRepository struct{ db *gorm.DB }

func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func (r *FriendshipRepository) Create(ctx context.Context, f *friendshipDomain.Friendship) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FriendshipRepository) GetByFriendshipID(ctx context.Context, friendshipID string) (*friendshipDomain.Friendship, error) {
	var out friendshipDomain.Friendship
	res := r.db.WithContext(ctx).Where("friendship_id = ?", friendshipID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, friendshipDomain.ErrNotFound
	}
	return &out, res.Error
}

// GetPair matches the unordered pair in either direction, any status.
func (r *FriendshipRepository) GetPair(ctx context.Context, a, b string) (*friendshipDomain.Friendship, error) {
	var out friendshipDomain.Friendship
	res := r.db.WithContext(ctx).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, friendshipDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *FriendshipRepository) ListForUser(ctx context.Context, userID string) ([]friendshipDomain.Friendship, error) {
	var out []friendshipDomain.Friendship
	res := r.db.WithContext(ctx).
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *FriendshipRepository) UpdateStatus(ctx context.Context, friendshipID string, from, to friendshipDomain.Status) (bool, error) {
	res := r.db.WithContext(ctx).Model(&friendshipDomain.Friendship{}).
		Where("friendship_id = ? AND status = ?", friendshipID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *FriendshipRepository) Delete(ctx context.Context, friendshipID string) error {
	return r.db.WithContext(ctx).
		Where("friendship_id = ?", friendshipID).
		Delete(&friendshipDomain.Friendship{}).Error
}
