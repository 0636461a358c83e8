package social

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

// Friend is one edge of the friendship graph. A pending edge is a
// request from UserID to FriendID; accepting flips the status, the
// edge then counts for both sides.
type Friend struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FriendID  string    `json:"friendId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is a direct message between two users.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sentAt"`
	Read       bool      `json:"read"`
}
