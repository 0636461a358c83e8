package social

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "record not found" }

type FriendsRepo interface {
	Create(ctx context.Context, f Friend) error
	GetByID(ctx context.Context, id string) (Friend, error)
	// FindBetween returns the edge linking a and b in either direction.
	FindBetween(ctx context.Context, a, b string) (Friend, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	DeleteBetween(ctx context.Context, a, b string) error
	ListAccepted(ctx context.Context, userID string) ([]Friend, error)
	ListIncomingPending(ctx context.Context, userID string) ([]Friend, error)
}

type MessagesRepo interface {
	Create(ctx context.Context, m Message) error
	// Conversation returns all messages between a and b, oldest first.
	Conversation(ctx context.Context, a, b string) ([]Message, error)
	// MarkRead flags every message from senderID to receiverID as read.
	MarkRead(ctx context.Context, senderID, receiverID string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
	// RecentPartners returns the ids of users the given user has
	// exchanged messages with, most recent conversation first.
	RecentPartners(ctx context.Context, userID string) ([]string, error)
}
