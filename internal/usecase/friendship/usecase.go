package friendship

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "lendcircle-backend/internal/domain/friendship"
	"lendcircle-backend/internal/domain/uow"
	"lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/event"
	"lendcircle-backend/pkg/id"
)

type Usecase struct {
	uow    uow.UnitOfWork
	events *event.Dispatcher
}

func NewUsecase(u uow.UnitOfWork, d *event.Dispatcher) *Usecase {
	return &Usecase{uow: u, events: d}
}

type FriendDTO struct {
	FriendshipID string `json:"friendship_id"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	Status       string `json:"status"`
}

// FriendList partitions a user's friendships the way the friends
// screen consumes them.
type FriendList struct {
	Accepted        []FriendDTO `json:"accepted"`
	PendingIncoming []FriendDTO `json:"pending_incoming"`
	PendingOutgoing []FriendDTO `json:"pending_outgoing"`
}

// Request creates a pending friendship toward the named user. The
// unordered pair is unique: a reciprocal or repeated request in any
// status is a duplicate.
func (u *Usecase) Request(ctx context.Context, fromID, toUsername string) (*FriendDTO, error) {
	var (
		created *domain.Friendship
		to      *user.Profile
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		from, err := r.Users.GetByUserID(ctx, fromID)
		if err != nil {
			return err
		}
		to, err = r.Users.GetByUsername(ctx, strings.ToLower(toUsername))
		if err != nil {
			return err
		}
		if to.UserID == from.UserID {
			return domain.ErrSelfFriend
		}

		_, err = r.Friendships.GetPair(ctx, from.UserID, to.UserID)
		switch {
		case err == nil:
			return domain.ErrDuplicateRequest
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		created = &domain.Friendship{
			FriendshipID: id.NewID32(),
			UserID:       from.UserID,
			FriendID:     to.UserID,
			Status:       domain.StatusPending,
		}
		return r.Friendships.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	u.events.Publish(event.Event{
		Kind:         event.FriendRequestReceived,
		FriendshipID: created.FriendshipID,
		ActorID:      fromID,
		RecipientID:  created.FriendID,
		At:           time.Now().UTC(),
	})
	return &FriendDTO{
		FriendshipID: created.FriendshipID,
		UserID:       to.UserID,
		Username:     to.Username,
		FullName:     to.FullName,
		Status:       string(created.Status),
	}, nil
}

// Respond lets the recipient accept (row becomes accepted) or decline
// (row deleted, no history kept).
func (u *Usecase) Respond(ctx context.Context, friendshipID, responderID string, accept bool) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		f, err := r.Friendships.GetByFriendshipID(ctx, friendshipID)
		if err != nil {
			return err
		}
		if f.FriendID != responderID {
			return domain.ErrNotRecipient
		}
		if f.Status != domain.StatusPending {
			return domain.ErrNotPending
		}
		if !accept {
			return r.Friendships.Delete(ctx, friendshipID)
		}

		ok, err := r.Friendships.UpdateStatus(ctx, friendshipID, domain.StatusPending, domain.StatusAccepted)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotPending
		}
		return nil
	})
}

// ListFor partitions the caller's friendships by status and direction,
// resolving the counterpart profile for display.
func (u *Usecase) ListFor(ctx context.Context, userID string) (*FriendList, error) {
	out := &FriendList{
		Accepted:        []FriendDTO{},
		PendingIncoming: []FriendDTO{},
		PendingOutgoing: []FriendDTO{},
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rows, err := r.Friendships.ListForUser(ctx, userID)
		if err != nil {
			return err
		}
		for i := range rows {
			f := &rows[i]
			counterpartID := f.UserID
			if f.UserID == userID {
				counterpartID = f.FriendID
			}
			p, err := r.Users.GetByUserID(ctx, counterpartID)
			if err != nil {
				return err
			}
			dto := FriendDTO{
				FriendshipID: f.FriendshipID,
				UserID:       p.UserID,
				Username:     p.Username,
				FullName:     p.FullName,
				Status:       string(f.Status),
			}
			switch {
			case f.Status == domain.StatusAccepted:
				out.Accepted = append(out.Accepted, dto)
			case f.UserID == userID:
				out.PendingOutgoing = append(out.PendingOutgoing, dto)
			default:
				out.PendingIncoming = append(out.PendingIncoming, dto)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
