package loan

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending           Status = "pending"
	StatusPendingAcceptance Status = "pending_acceptance"
	StatusActive            Status = "active"
	StatusPaid              Status = "paid"
	StatusRejected          Status = "rejected"
)

// Kind is how the requester relates to the loan at creation time.
type Kind string

const (
	KindLend   Kind = "lend"   // requester is the lender
	KindBorrow Kind = "borrow" // requester is the borrower
	KindLink   Kind = "link"   // lender-initiated open offer, borrower unknown
)

// ServiceFeeRate is fixed at 2% of principal, frozen at creation.
const ServiceFeeRate = 0.02

var (
	ErrNotFound             = errors.New("loan not found")
	ErrInvalidTransition    = errors.New("loan is not in the expected state")
	ErrCounterpartyNotFound = errors.New("counterparty not found")
	ErrSelfTransaction      = errors.New("cannot transact with yourself")
	ErrSelfAccept           = errors.New("cannot accept your own loan")
	ErrNotCounterparty      = errors.New("caller is not a counterparty of this loan")
	ErrNotFriends           = errors.New("no accepted friendship with counterparty")
)

func ServiceFee(amount float64) float64 { return amount * ServiceFeeRate }

// RepaymentAmount is principal plus simple interest, frozen at creation.
func RepaymentAmount(amount, ratePercent float64) float64 {
	return amount + amount*ratePercent/100
}

type Loan struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	LoanID   string `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	LenderID string `gorm:"column:lender_id;type:char(32);not null;index:idx_loans_lender" json:"lender_id"`
	// NULL only while a link loan awaits acceptance
	BorrowerID *string `gorm:"column:borrower_id;type:char(32);index:idx_loans_borrower" json:"borrower_id"`
	// Who created the record; gates who may respond (the lender/borrower
	// pair alone cannot answer that)
	InitiatorID  string  `gorm:"column:initiator_id;type:char(32);not null" json:"initiator_id"`
	Amount       float64 `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	InterestRate float64 `gorm:"column:interest_rate;type:decimal(6,2);not null" json:"interest_rate"`
	ServiceFee   float64 `gorm:"column:service_fee;type:decimal(18,2);not null" json:"service_fee"`
	// Shareable reference for link loans, empty otherwise
	ShareToken      string    `gorm:"column:share_token;type:char(36);index:idx_loans_share_token" json:"share_token,omitempty"`
	Status          Status    `gorm:"column:status;type:enum('pending','pending_acceptance','active','paid','rejected');default:'pending'" json:"status"`
	StatusUpdatedAt time.Time `gorm:"column:status_updated_at;autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Repayment is the frozen obligation for this loan.
func (l *Loan) Repayment() float64 { return RepaymentAmount(l.Amount, l.InterestRate) }
