package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM, no CHAR) ---

type profileSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	UserID     string    `gorm:"size:32;column:user_id;uniqueIndex"`
	Username   string    `gorm:"size:64;column:username;uniqueIndex"`
	FullName   string    `gorm:"size:255;column:full_name"`
	Balance    float64   `gorm:"column:balance"`
	TrustScore float64   `gorm:"column:trust_score"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (profileSQLite) TableName() string { return "profiles" }

type loanSQLite struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	LoanID          string    `gorm:"size:32;column:loan_id;uniqueIndex"`
	LenderID        string    `gorm:"size:32;column:lender_id"`
	BorrowerID      *string   `gorm:"size:32;column:borrower_id"`
	InitiatorID     string    `gorm:"size:32;column:initiator_id"`
	Amount          float64   `gorm:"column:amount"`
	InterestRate    float64   `gorm:"column:interest_rate"`
	ServiceFee      float64   `gorm:"column:service_fee"`
	ShareToken      string    `gorm:"size:36;column:share_token"`
	Status          string    `gorm:"type:text;column:status"` // ← no enum
	StatusUpdatedAt time.Time `gorm:"column:status_updated_at"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type friendshipSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	FriendshipID string    `gorm:"size:32;column:friendship_id;uniqueIndex"`
	UserID       string    `gorm:"size:32;column:user_id"`
	FriendID     string    `gorm:"size:32;column:friend_id"`
	Status       string    `gorm:"type:text;column:status"` // ← no enum
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (friendshipSQLite) TableName() string { return "friendships" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&profileSQLite{}, &loanSQLite{}, &friendshipSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
