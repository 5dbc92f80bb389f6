package friendship

import "context"

type Repository interface {
	Create(ctx context.Context, f *Friendship) error
	GetByFriendshipID(ctx context.Context, friendshipID string) (*Friendship, error)
	// GetPair matches the unordered pair {a, b} in either direction and
	// any status.
	GetPair(ctx context.Context, a, b string) (*Friendship, error)
	ListForUser(ctx context.Context, userID string) ([]Friendship, error)
	// UpdateStatus conditionally transitions; false means the row was
	// not in the expected source status.
	UpdateStatus(ctx context.Context, friendshipID string, from, to Status) (bool, error)
	// Delete removes the row (declined requests leave no history).
	Delete(ctx context.Context, friendshipID string) error
}
