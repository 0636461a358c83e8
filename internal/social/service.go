package social

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"advisor-backend/internal/shared/telemetry"
	"advisor-backend/internal/users"
)

var (
	ErrSelfRequest    = errors.New("cannot send a friend request to yourself")
	ErrAlreadyLinked  = errors.New("friend request already exists")
	ErrNotAddressee   = errors.New("request is not addressed to this user")
	ErrEmptyMessage   = errors.New("message content is empty")
	ErrUserNotFound   = errors.New("user not found")
	ErrRequestMissing = errors.New("friend request not found")
)

// FriendEntry is a confirmed friendship joined with the partner's public info.
type FriendEntry struct {
	FriendshipID string     `json:"friendshipId"`
	User         PartnerRef `json:"user"`
	Since        time.Time  `json:"since"`
}

// RequestEntry is an incoming pending request with the sender's public info.
type RequestEntry struct {
	RequestID string     `json:"requestId"`
	From      PartnerRef `json:"from"`
	SentAt    time.Time  `json:"sentAt"`
}

// PartnerRef is the slice of a user profile exposed to friends and chats.
type PartnerRef struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type Service struct {
	Friends  FriendsRepo
	Messages MessagesRepo
	Users    *users.Service
}

func (s *Service) SendFriendRequest(ctx context.Context, userID, friendID string) (Friend, error) {
	if userID == friendID {
		return Friend{}, ErrSelfRequest
	}
	if _, err := s.Users.GetByID(ctx, friendID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Friend{}, ErrUserNotFound
		}
		return Friend{}, err
	}
	if _, err := s.Friends.FindBetween(ctx, userID, friendID); err == nil {
		return Friend{}, ErrAlreadyLinked
	} else if !errors.Is(err, ErrNotFound) {
		return Friend{}, err
	}

	f := Friend{
		ID:        uuid.NewString(),
		UserID:    userID,
		FriendID:  friendID,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Friends.Create(ctx, f); err != nil {
		return Friend{}, err
	}
	telemetry.Info("social.request.sent", map[string]any{"from": userID, "to": friendID})
	return f, nil
}

func (s *Service) ListFriends(ctx context.Context, userID string) ([]FriendEntry, error) {
	links, err := s.Friends.ListAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]FriendEntry, 0, len(links))
	for _, link := range links {
		partnerID := link.FriendID
		if partnerID == userID {
			partnerID = link.UserID
		}
		ref, err := s.partnerRef(ctx, partnerID)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, FriendEntry{FriendshipID: link.ID, User: ref, Since: link.CreatedAt})
	}
	return out, nil
}

func (s *Service) ListRequests(ctx context.Context, userID string) ([]RequestEntry, error) {
	pending, err := s.Friends.ListIncomingPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]RequestEntry, 0, len(pending))
	for _, req := range pending {
		ref, err := s.partnerRef(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, RequestEntry{RequestID: req.ID, From: ref, SentAt: req.CreatedAt})
	}
	return out, nil
}

func (s *Service) AcceptRequest(ctx context.Context, userID, requestID string) error {
	req, err := s.Friends.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrRequestMissing
		}
		return err
	}
	if req.FriendID != userID || req.Status != StatusPending {
		return ErrNotAddressee
	}
	if err := s.Friends.UpdateStatus(ctx, requestID, StatusAccepted); err != nil {
		return err
	}
	telemetry.Info("social.request.accepted", map[string]any{"request": requestID, "by": userID})
	return nil
}

func (s *Service) RejectRequest(ctx context.Context, userID, requestID string) error {
	req, err := s.Friends.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrRequestMissing
		}
		return err
	}
	if req.FriendID != userID || req.Status != StatusPending {
		return ErrNotAddressee
	}
	return s.Friends.Delete(ctx, requestID)
}

func (s *Service) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return s.Friends.DeleteBetween(ctx, userID, friendID)
}

func (s *Service) SendMessage(ctx context.Context, senderID, receiverID, content string) (Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Message{}, ErrEmptyMessage
	}
	if _, err := s.Users.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Message{}, ErrUserNotFound
		}
		return Message{}, err
	}
	m := Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		SentAt:     time.Now().UTC(),
	}
	if err := s.Messages.Create(ctx, m); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Conversation returns the full message history with a partner, oldest first,
// and marks the partner's messages to the caller as read.
func (s *Service) Conversation(ctx context.Context, userID, partnerID string) ([]Message, error) {
	msgs, err := s.Messages.Conversation(ctx, userID, partnerID)
	if err != nil {
		return nil, err
	}
	if err := s.Messages.MarkRead(ctx, partnerID, userID); err != nil {
		telemetry.Warn("social.conversation.mark_read_failed", map[string]any{"error": err.Error()})
	}
	return msgs, nil
}

// MarkConversationRead marks the partner's messages to the caller as read.
func (s *Service) MarkConversationRead(ctx context.Context, userID, partnerID string) error {
	return s.Messages.MarkRead(ctx, partnerID, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.Messages.UnreadCount(ctx, userID)
}

// RecentChats lists conversation partners ordered by most recent message.
func (s *Service) RecentChats(ctx context.Context, userID string) ([]PartnerRef, error) {
	partnerIDs, err := s.Messages.RecentPartners(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]PartnerRef, 0, len(partnerIDs))
	for _, id := range partnerIDs {
		ref, err := s.partnerRef(ctx, id)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

func (s *Service) partnerRef(ctx context.Context, userID string) (PartnerRef, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return PartnerRef{}, err
	}
	ref := PartnerRef{ID: u.ID, Username: u.Username}
	if u.AvatarKey != "" {
		ref.AvatarURL = "/api/v1/users/" + u.ID + "/avatar"
	}
	return ref, nil
}
