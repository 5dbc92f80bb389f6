package friendship

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

var (
	ErrNotFound = errors.New("friendship not found")
	// ErrDuplicateRequest covers both directions: the unordered pair is
	// unique regardless of who initiated.
	ErrDuplicateRequest = errors.New("friendship already exists for this pair")
	ErrSelfFriend       = errors.New("cannot friend yourself")
	ErrNotRecipient     = errors.New("only the recipient may respond")
	ErrNotPending       = errors.New("friendship is not pending")
)

type Friendship struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	FriendshipID string `gorm:"column:friendship_id;type:char(32);not null;uniqueIndex:ux_friendships_friendship_id" json:"friendship_id"`
	// UserID is the initiator, FriendID the recipient
	UserID    string    `gorm:"column:user_id;type:char(32);not null;index:idx_friendships_user" json:"user_id"`
	FriendID  string    `gorm:"column:friend_id;type:char(32);not null;index:idx_friendships_friend" json:"friend_id"`
	Status    Status    `gorm:"column:status;type:enum('pending','accepted');default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Friendship) TableName() string { return "friendships" }
