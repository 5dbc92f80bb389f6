// Package event is the in-process lifecycle feed. Collaborators
// subscribe with a predicate so "notify or not" is a pure function of
// event + viewer, decided outside any transport.
package event

import (
	"sync"
	"time"
)

type Kind string

const (
	LoanCreated           Kind = "loan_created"
	LoanAccepted          Kind = "loan_accepted"
	LoanRejected          Kind = "loan_rejected"
	LoanSettled           Kind = "loan_settled"
	FriendRequestReceived Kind = "friend_request_received"
)

type Event struct {
	Kind         Kind      `json:"kind"`
	LoanID       string    `json:"loan_id,omitempty"`
	FriendshipID string    `json:"friendship_id,omitempty"`
	// ActorID is who triggered the transition; viewers are usually only
	// notified about events they did not cause themselves.
	ActorID    string `json:"actor_id"`
	LenderID   string `json:"lender_id,omitempty"`
	BorrowerID string `json:"borrower_id,omitempty"`
	// RecipientID is set for friend-request events
	RecipientID string    `json:"recipient_id,omitempty"`
	At          time.Time `json:"at"`
}

type Predicate func(Event) bool
type Handler func(Event)

// ForLoan matches events about a single loan.
func ForLoan(loanID string) Predicate {
	return func(e Event) bool { return e.LoanID == loanID }
}

// ForViewer matches events a given user should be told about: they are
// a party to the loan (or the friend-request recipient) and did not
// trigger the event themselves.
func ForViewer(viewerID string) Predicate {
	return func(e Event) bool {
		if e.ActorID == viewerID {
			return false
		}
		return e.LenderID == viewerID || e.BorrowerID == viewerID || e.RecipientID == viewerID
	}
}

type subscription struct {
	pred Predicate
	h    Handler
}

type Dispatcher struct {
	mu   sync.Mutex
	subs map[uint64]subscription
	next uint64
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[uint64]subscription)}
}

// Subscribe registers a handler for events matching pred. The returned
// func cancels the subscription.
func (d *Dispatcher) Subscribe(pred Predicate, h Handler) func() {
	d.mu.Lock()
	id := d.next
	d.next++
	d.subs[id] = subscription{pred: pred, h: h}
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.subs, id)
		d.mu.Unlock()
	}
}

// Publish fans out synchronously to every matching handler. Handlers
// run outside the dispatcher lock so they may subscribe/cancel freely.
func (d *Dispatcher) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	d.mu.Lock()
	matched := make([]Handler, 0, len(d.subs))
	for _, s := range d.subs {
		if s.pred == nil || s.pred(e) {
			matched = append(matched, s.h)
		}
	}
	d.mu.Unlock()

	for _, h := range matched {
		h(e)
	}
}
