// Package memuow is an in-memory UnitOfWork for usecase and handler
// tests: real repository semantics (conditional transitions, relative
// balance updates, rollback on error) without a database.
package memuow

import (
	"context"
	"sync"
	"time"

	"lendcircle-backend/internal/domain/friendship"
	"lendcircle-backend/internal/domain/loan"
	"lendcircle-backend/internal/domain/uow"
	"lendcircle-backend/internal/domain/user"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*Store)(nil)

type state struct {
	users       map[string]user.Profile       // by user_id
	loans       map[string]loan.Loan          // by loan_id
	friendships map[string]friendship.Friendship // by friendship_id
	nextID      uint64
}

func (s state) clone() state {
	c := state{
		users:       make(map[string]user.Profile, len(s.users)),
		loans:       make(map[string]loan.Loan, len(s.loans)),
		friendships: make(map[string]friendship.Friendship, len(s.friendships)),
		nextID:      s.nextID,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.loans {
		c.loans[k] = v
	}
	for k, v := range s.friendships {
		c.friendships[k] = v
	}
	return c
}

type Store struct {
	mu sync.Mutex
	st state
}

func New() *Store {
	return &Store{st: state{
		users:       map[string]user.Profile{},
		loans:       map[string]loan.Loan{},
		friendships: map[string]friendship.Friendship{},
		nextID:      1,
	}}
}

// ---- seeding / assertion helpers (outside any tx) ----

func (s *Store) AddUser(p user.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.st.nextID
		s.st.nextID++
	}
	s.st.users[p.UserID] = p
}

func (s *Store) AddFriendship(f friendship.Friendship) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == 0 {
		f.ID = s.st.nextID
		s.st.nextID++
	}
	s.st.friendships[f.FriendshipID] = f
}

func (s *Store) User(userID string) (user.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.st.users[userID]
	return p, ok
}

func (s *Store) Loan(loanID string) (loan.Loan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.st.loans[loanID]
	return l, ok
}

func (s *Store) Friendship(friendshipID string) (friendship.Friendship, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.st.friendships[friendshipID]
	return f, ok
}

// ---- UnitOfWork ----

// WithinTx serializes transactions under one mutex and restores the
// pre-tx snapshot when fn fails, mirroring a database rollback.
func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.st.clone()
	err := fn(s.repos())
	if err != nil {
		s.st = snapshot
	}
	return err
}

func (s *Store) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.st.clone()
	cur, ok := s.st.loans[loanID]
	if !ok {
		return loan.ErrNotFound
	}
	err := fn(s.repos(), &cur)
	if err != nil {
		s.st = snapshot
	}
	return err
}

func (s *Store) repos() uow.Repos {
	return uow.Repos{
		Users:       userRepo{s},
		Loans:       loanRepo{s},
		Friendships: friendshipRepo{s},
	}
}

// ---- repositories (callers hold the store mutex via WithinTx) ----

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, p *user.Profile) error {
	p.ID = r.s.st.nextID
	r.s.st.nextID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.s.st.users[p.UserID] = *p
	return nil
}

func (r userRepo) GetByUserID(_ context.Context, userID string) (*user.Profile, error) {
	p, ok := r.s.st.users[userID]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*user.Profile, error) {
	for _, p := range r.s.st.users {
		if p.Username == username {
			cp := p
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r userRepo) AdjustBalance(_ context.Context, userID string, delta float64) error {
	p, ok := r.s.st.users[userID]
	if !ok {
		return user.ErrNotFound
	}
	p.Balance += delta
	r.s.st.users[userID] = p
	return nil
}

func (r userRepo) SetTrustScore(_ context.Context, userID string, score float64) error {
	p, ok := r.s.st.users[userID]
	if !ok {
		return user.ErrNotFound
	}
	p.TrustScore = score
	r.s.st.users[userID] = p
	return nil
}

type loanRepo struct{ s *Store }

func (r loanRepo) Create(_ context.Context, l *loan.Loan) error {
	l.ID = r.s.st.nextID
	r.s.st.nextID++
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	r.s.st.loans[l.LoanID] = *l
	return nil
}

func (r loanRepo) Save(_ context.Context, l *loan.Loan) error {
	r.s.st.loans[l.LoanID] = *l
	return nil
}

func (r loanRepo) GetByLoanID(_ context.Context, loanID string) (*loan.Loan, error) {
	l, ok := r.s.st.loans[loanID]
	if !ok {
		return nil, loan.ErrNotFound
	}
	cp := l
	return &cp, nil
}

func (r loanRepo) GetByShareToken(_ context.Context, token string) (*loan.Loan, error) {
	for _, l := range r.s.st.loans {
		if l.ShareToken != "" && l.ShareToken == token {
			cp := l
			return &cp, nil
		}
	}
	return nil, loan.ErrNotFound
}

func (r loanRepo) ListForUser(_ context.Context, userID string) ([]loan.Loan, error) {
	var out []loan.Loan
	for _, l := range r.s.st.loans {
		if l.LenderID == userID || (l.BorrowerID != nil && *l.BorrowerID == userID) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r loanRepo) Transition(_ context.Context, loanID string, from, to loan.Status, set map[string]any) (bool, error) {
	l, ok := r.s.st.loans[loanID]
	if !ok || l.Status != from {
		return false, nil
	}
	l.Status = to
	l.StatusUpdatedAt = time.Now().UTC()
	if v, ok := set["borrower_id"]; ok {
		b := v.(string)
		l.BorrowerID = &b
	}
	r.s.st.loans[loanID] = l
	return true, nil
}

type friendshipRepo struct{ s *Store }

func (r friendshipRepo) Create(_ context.Context, f *friendship.Friendship) error {
	f.ID = r.s.st.nextID
	r.s.st.nextID++
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	r.s.st.friendships[f.FriendshipID] = *f
	return nil
}

func (r friendshipRepo) GetByFriendshipID(_ context.Context, friendshipID string) (*friendship.Friendship, error) {
	f, ok := r.s.st.friendships[friendshipID]
	if !ok {
		return nil, friendship.ErrNotFound
	}
	cp := f
	return &cp, nil
}

func (r friendshipRepo) GetPair(_ context.Context, a, b string) (*friendship.Friendship, error) {
	for _, f := range r.s.st.friendships {
		if (f.UserID == a && f.FriendID == b) || (f.UserID == b && f.FriendID == a) {
			cp := f
			return &cp, nil
		}
	}
	return nil, friendship.ErrNotFound
}

func (r friendshipRepo) ListForUser(_ context.Context, userID string) ([]friendship.Friendship, error) {
	var out []friendship.Friendship
	for _, f := range r.s.st.friendships {
		if f.UserID == userID || f.FriendID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r friendshipRepo) UpdateStatus(_ context.Context, friendshipID string, from, to friendship.Status) (bool, error) {
	f, ok := r.s.st.friendships[friendshipID]
	if !ok || f.Status != from {
		return false, nil
	}
	f.Status = to
	r.s.st.friendships[friendshipID] = f
	return true, nil
}

func (r friendshipRepo) Delete(_ context.Context, friendshipID string) error {
	delete(r.s.st.friendships, friendshipID)
	return nil
}
