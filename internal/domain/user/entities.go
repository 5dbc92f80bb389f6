package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrTrustLimitExceeded is returned when a requested obligation
	// would push a borrower past the credit limit derived from their
	// trust score.
	ErrTrustLimitExceeded = errors.New("trust score limit exceeded")
)

// DefaultTrustScore is assigned when a profile is auto-provisioned on
// first sign-in. Scores live in [0, 850].
const DefaultTrustScore = 500.0

type Profile struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	UserID string `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_profiles_user_id" json:"user_id"`
	// Stored lowercase; lookups are case-insensitive by construction
	Username   string    `gorm:"column:username;size:64;not null;uniqueIndex:ux_profiles_username" json:"username"`
	FullName   string    `gorm:"column:full_name;size:255" json:"full_name"`
	Balance    float64   `gorm:"column:balance;type:decimal(18,2);not null;default:0" json:"balance"`
	TrustScore float64   `gorm:"column:trust_score;type:decimal(6,2);not null;default:500" json:"trust_score"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Profile) TableName() string { return "profiles" }
