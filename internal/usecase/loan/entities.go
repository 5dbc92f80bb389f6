package loan

import (
	"time"

	domain "lendcircle-backend/internal/domain/loan"
)

type CreateLoanInput struct {
	Kind                 domain.Kind `json:"kind"`
	RequesterID          string      `json:"requester_id"`
	CounterpartyUsername string      `json:"counterparty_username"`
	Amount               float64     `json:"amount"`
	InterestRate         float64     `json:"interest_rate"`
}

type SplitBillInput struct {
	RequesterID    string   `json:"requester_id"`
	TotalAmount    float64  `json:"total_amount"`
	ParticipantIDs []string `json:"participant_ids"`
}

type LoanDTO struct {
	LoanID          string    `json:"loan_id"`
	LenderID        string    `json:"lender_id"`
	BorrowerID      string    `json:"borrower_id,omitempty"`
	InitiatorID     string    `json:"initiator_id"`
	Amount          float64   `json:"amount"`
	InterestRate    float64   `json:"interest_rate"`
	ServiceFee      float64   `json:"service_fee"`
	RepaymentAmount float64   `json:"repayment_amount"`
	Status          string    `json:"status"`
	ShareToken      string    `json:"share_token,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	dto := &LoanDTO{
		LoanID:          l.LoanID,
		LenderID:        l.LenderID,
		InitiatorID:     l.InitiatorID,
		Amount:          l.Amount,
		InterestRate:    l.InterestRate,
		ServiceFee:      l.ServiceFee,
		RepaymentAmount: l.Repayment(),
		Status:          string(l.Status),
		ShareToken:      l.ShareToken,
		CreatedAt:       l.CreatedAt,
	}
	if l.BorrowerID != nil {
		dto.BorrowerID = *l.BorrowerID
	}
	return dto
}
