package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lendcircle-backend/internal/domain/friendship"
	domain "lendcircle-backend/internal/domain/loan"
	"lendcircle-backend/internal/domain/uow"
	"lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/event"
	"lendcircle-backend/internal/usecase/ledger"
	"lendcircle-backend/internal/usecase/trust"
	"lendcircle-backend/pkg/id"
)

type Usecase struct {
	uow    uow.UnitOfWork
	trust  *trust.Engine
	events *event.Dispatcher
}

func NewUsecase(u uow.UnitOfWork, t *trust.Engine, d *event.Dispatcher) *Usecase {
	return &Usecase{uow: u, trust: t, events: d}
}

// Create validates and persists a new loan. Validation order: amount →
// rate → counterparty resolvable → not self → accepted friendship
// (direct loans only) → trust limit (only when the requester becomes
// the obligated party) → fee/interest frozen → persist.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if in.InterestRate < 0 {
		return nil, errors.New("interest rate must not be negative")
	}
	switch in.Kind {
	case domain.KindLend, domain.KindBorrow, domain.KindLink:
	default:
		return nil, fmt.Errorf("unknown loan kind %q", in.Kind)
	}

	var created *domain.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		requester, err := r.Users.GetByUserID(ctx, in.RequesterID)
		if err != nil {
			return err
		}

		l := &domain.Loan{
			LoanID:          id.NewID32(),
			InitiatorID:     requester.UserID,
			Amount:          in.Amount,
			InterestRate:    in.InterestRate,
			ServiceFee:      domain.ServiceFee(in.Amount),
			StatusUpdatedAt: time.Now().UTC(),
		}

		if in.Kind == domain.KindLink {
			// Open offer: borrower unknown until someone claims the token.
			l.LenderID = requester.UserID
			l.Status = domain.StatusPendingAcceptance
			l.ShareToken = uuid.NewString()
			created = l
			return r.Loans.Create(ctx, l)
		}

		cp, err := r.Users.GetByUsername(ctx, strings.ToLower(in.CounterpartyUsername))
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return domain.ErrCounterpartyNotFound
			}
			return err
		}
		if cp.UserID == requester.UserID {
			return domain.ErrSelfTransaction
		}

		// Direct loans only run between accepted friends; link loans
		// bypass this by construction.
		pair, err := r.Friendships.GetPair(ctx, requester.UserID, cp.UserID)
		if err != nil || pair.Status != friendship.StatusAccepted {
			return domain.ErrNotFriends
		}

		if in.Kind == domain.KindBorrow {
			// Requester becomes the obligated party: gate on their limit.
			if err := u.trust.CheckLimitIn(ctx, r, requester.UserID, in.Amount); err != nil {
				return err
			}
			l.LenderID = cp.UserID
			l.BorrowerID = &requester.UserID
		} else {
			l.LenderID = requester.UserID
			l.BorrowerID = &cp.UserID
		}
		l.Status = domain.StatusPending
		created = l
		return r.Loans.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	u.events.Publish(lifecycleEvent(event.LoanCreated, created, in.RequesterID))
	return toDTO(created), nil
}

// Accept claims a link loan: sets the borrower, activates, and moves
// the principal. The conditional transition guarantees exactly one
// winner under concurrent accepts.
func (u *Usecase) Accept(ctx context.Context, loanID, acceptingUserID string) (*LoanDTO, error) {
	var accepted *domain.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusPendingAcceptance {
			return domain.ErrInvalidTransition
		}
		if l.LenderID == acceptingUserID {
			return domain.ErrSelfAccept
		}
		if _, err := r.Users.GetByUserID(ctx, acceptingUserID); err != nil {
			return err
		}

		ok, err := r.Loans.Transition(ctx, l.LoanID,
			domain.StatusPendingAcceptance, domain.StatusActive,
			map[string]any{"borrower_id": acceptingUserID})
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidTransition
		}

		if _, err := ledger.TransferIn(ctx, r, l.LenderID, acceptingUserID, l.Amount); err != nil {
			return err
		}

		l.BorrowerID = &acceptingUserID
		l.Status = domain.StatusActive
		accepted = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.events.Publish(lifecycleEvent(event.LoanAccepted, accepted, acceptingUserID))
	return toDTO(accepted), nil
}

// Respond resolves a direct pending loan: only the non-initiating party
// may act. Accepting activates the loan and moves the principal;
// declining is terminal and costs the initiator trust. On a link loan
// still awaiting acceptance, the issuer (and only the issuer) may
// respond with accept=false to withdraw the offer.
func (u *Usecase) Respond(ctx context.Context, loanID, responderID string, accept bool) (*LoanDTO, error) {
	var (
		resolved *domain.Loan
		kind     event.Kind
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		switch l.Status {
		case domain.StatusPendingAcceptance:
			if responderID != l.LenderID {
				return domain.ErrNotCounterparty
			}
			if accept {
				return domain.ErrSelfAccept
			}
			return u.reject(ctx, r, l, domain.StatusPendingAcceptance, &resolved, &kind)

		case domain.StatusPending:
			if responderID == l.InitiatorID {
				return domain.ErrNotCounterparty
			}
			if l.BorrowerID == nil || (responderID != l.LenderID && responderID != *l.BorrowerID) {
				return domain.ErrNotCounterparty
			}
			if !accept {
				return u.reject(ctx, r, l, domain.StatusPending, &resolved, &kind)
			}

			ok, err := r.Loans.Transition(ctx, l.LoanID, domain.StatusPending, domain.StatusActive, nil)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrInvalidTransition
			}
			if _, err := ledger.TransferIn(ctx, r, l.LenderID, *l.BorrowerID, l.Amount); err != nil {
				return err
			}
			l.Status = domain.StatusActive
			resolved, kind = l, event.LoanAccepted
			return nil

		default:
			return domain.ErrInvalidTransition
		}
	})
	if err != nil {
		return nil, err
	}

	u.events.Publish(lifecycleEvent(kind, resolved, responderID))
	return toDTO(resolved), nil
}

func (u *Usecase) reject(ctx context.Context, r uow.Repos, l *domain.Loan, from domain.Status, out **domain.Loan, kind *event.Kind) error {
	ok, err := r.Loans.Transition(ctx, l.LoanID, from, domain.StatusRejected, nil)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidTransition
	}
	if err := u.trust.OnRejectedIn(ctx, r, l.InitiatorID); err != nil {
		return err
	}
	l.Status = domain.StatusRejected
	*out, *kind = l, event.LoanRejected
	return nil
}

// Settle marks an active loan paid and moves the repayment (principal
// plus interest) back to the lender. Only the borrower settles: the
// obligated party confirms repayment.
func (u *Usecase) Settle(ctx context.Context, loanID, callerID string) (*LoanDTO, error) {
	var settled *domain.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusActive {
			return domain.ErrInvalidTransition
		}
		if l.BorrowerID == nil || callerID != *l.BorrowerID {
			return domain.ErrNotCounterparty
		}

		ok, err := r.Loans.Transition(ctx, l.LoanID, domain.StatusActive, domain.StatusPaid, nil)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidTransition
		}
		if _, err := ledger.TransferIn(ctx, r, *l.BorrowerID, l.LenderID, l.Repayment()); err != nil {
			return err
		}
		if err := u.trust.OnSettledIn(ctx, r, *l.BorrowerID, l.LenderID); err != nil {
			return err
		}
		l.Status = domain.StatusPaid
		settled = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.events.Publish(lifecycleEvent(event.LoanSettled, settled, callerID))
	return toDTO(settled), nil
}

// SplitBill creates one zero-interest, zero-fee pending loan per
// participant: the requester paid the bill and each friend owes an
// equal share (bill split N+1 ways, requester included). All rows
// persist atomically or none do.
func (u *Usecase) SplitBill(ctx context.Context, in SplitBillInput) ([]LoanDTO, error) {
	if in.TotalAmount <= 0 {
		return nil, errors.New("total amount must be positive")
	}
	if len(in.ParticipantIDs) == 0 {
		return nil, errors.New("at least one participant required")
	}

	share := in.TotalAmount / float64(len(in.ParticipantIDs)+1)
	var created []*domain.Loan

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		requester, err := r.Users.GetByUserID(ctx, in.RequesterID)
		if err != nil {
			return err
		}
		for _, pid := range in.ParticipantIDs {
			if pid == requester.UserID {
				return domain.ErrSelfTransaction
			}
			participant, err := r.Users.GetByUserID(ctx, pid)
			if err != nil {
				return err
			}
			pair, err := r.Friendships.GetPair(ctx, requester.UserID, participant.UserID)
			if err != nil || pair.Status != friendship.StatusAccepted {
				return domain.ErrNotFriends
			}

			borrowerID := participant.UserID
			l := &domain.Loan{
				LoanID:          id.NewID32(),
				LenderID:        requester.UserID,
				BorrowerID:      &borrowerID,
				InitiatorID:     requester.UserID,
				Amount:          share,
				Status:          domain.StatusPending,
				StatusUpdatedAt: time.Now().UTC(),
			}
			if err := r.Loans.Create(ctx, l); err != nil {
				return err
			}
			created = append(created, l)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]LoanDTO, 0, len(created))
	for _, l := range created {
		u.events.Publish(lifecycleEvent(event.LoanCreated, l, in.RequesterID))
		out = append(out, *toDTO(l))
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// GetByShareToken resolves a link loan for the acceptance screen.
func (u *Usecase) GetByShareToken(ctx context.Context, token string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByShareToken(ctx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListForUser returns every loan where the user is lender or borrower.
func (u *Usecase) ListForUser(ctx context.Context, userID string) ([]LoanDTO, error) {
	var out []LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.ListForUser(ctx, userID)
		if err != nil {
			return err
		}
		out = make([]LoanDTO, 0, len(loans))
		for i := range loans {
			out = append(out, *toDTO(&loans[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func lifecycleEvent(kind event.Kind, l *domain.Loan, actorID string) event.Event {
	e := event.Event{
		Kind:     kind,
		LoanID:   l.LoanID,
		ActorID:  actorID,
		LenderID: l.LenderID,
		At:       time.Now().UTC(),
	}
	if l.BorrowerID != nil {
		e.BorrowerID = *l.BorrowerID
	}
	return e
}
