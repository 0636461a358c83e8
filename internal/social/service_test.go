package social

import (
	"context"
	"errors"
	"testing"

	"advisor-backend/internal/users"
)

func newSocialService(t *testing.T) (*Service, *users.Service) {
	t.Helper()
	usersSvc := users.NewService(users.NewMemoryRepo())
	svc := &Service{
		Friends:  NewMemoryFriendsRepo(),
		Messages: NewMemoryMessagesRepo(),
		Users:    usersSvc,
	}
	return svc, usersSvc
}

func registerUser(t *testing.T, svc *users.Service, username string) string {
	t.Helper()
	u, err := svc.Register(context.Background(), username, username+"@example.com", "secret123")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u.ID
}

func TestSendFriendRequestRejectsSelf(t *testing.T) {
	svc, usersSvc := newSocialService(t)
	id := registerUser(t, usersSvc, "zhangsan")

	if _, err := svc.SendFriendRequest(context.Background(), id, id); !errors.Is(err, ErrSelfRequest) {
		t.Fatalf("expected ErrSelfRequest, got %v", err)
	}
}

func TestSendFriendRequestUnknownTarget(t *testing.T) {
	svc, usersSvc := newSocialService(t)
	id := registerUser(t, usersSvc, "zhangsan")

	if _, err := svc.SendFriendRequest(context.Background(), id, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSendFriendRequestDuplicate(t *testing.T) {
	svc, usersSvc := newSocialService(t)
	a := registerUser(t, usersSvc, "zhangsan")
	b := registerUser(t, usersSvc, "lisi")

	if _, err := svc.SendFriendRequest(context.Background(), a, b); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if _, err := svc.SendFriendRequest(context.Background(), a, b); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("expected ErrAlreadyLinked, got %v", err)
	}
	// reverse direction also counts as linked
	if _, err := svc.SendFriendRequest(context.Background(), b, a); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("expected ErrAlreadyLinked for reverse request, got %v", err)
	}
}

func TestAcceptRequestFlow(t *testing.T) {
	svc, usersSvc := newSocialService(t)
	a := registerUser(t, usersSvc, "zhangsan")
	b := registerUser(t, usersSvc, "lisi")

	req, err := svc.SendFriendRequest(context.Background(), a, b)
	if err != nil {
		t.Fatalf("send request: %v", err)
	}

	pending, err := svc.ListRequests(context.Background(), b)
	if err != nil {
		t.Fatalf("list requests: %v", err)
	}
	if len(pending) != 1 || pending[0].From.Username != "zhangsan" {
		t.Fatalf("unexpected pending requests: %+v", pending)
	}

	// sender must not be able to accept their own request
	if err := svc.AcceptRequest(context.Background(), a, req.ID); !errors.Is(err, ErrNotAddressee) {
		t.Fatalf("expected ErrNotAddressee, got %v", err)
	}

	if err := svc.AcceptRequest(context.Background(), b, req.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	for _, userID := range []string{a, b} {
		friends, err := svc.ListFriends(context.Background(), userID)
		if err != nil {
			t.Fatalf("list friends for %s: %v", userID, err)
		}
		if len(friends) != 1 {
			t.Fatalf("expected one friend for %s, got %d", userID, len(friends))
		}
	}

	// accepted request no longer shows up as pending
	pending, err = svc.ListRequests(context.Background(), b)
	if err != nil {
		t.Fatalf("list requests after accept: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending requests, got %d", len(pending))
	}
}

func TestRejectRequestDeletesLink(t *testing.T) {
	svc, usersSvc := newSocialService(t)
	a := registerUser(t, usersSvc, "zhangsan")
	b := registerUser(t, usersSvc, "lisi")

	req, err := svc.SendFriendRequest(context.Background(), a, b)
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	if err := svc.RejectRequest(context.Background(), b, req.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	// the link is gone, so a new request may be sent
	if _, err := svc.SendFriendRequest(context.Background(), a, b); err != nil {
		t.Fatalf("request after reject: %v", err)
	}
}

func TestRemoveFriend(t *testing.T) {
	svc, usersSvc := newSocialService(t)
	a := registerUser(t, usersSvc, "zhangsan")
	b := registerUser(t, usersSvc, "lisi")

	req, err := svc.SendFriendRequest(context.Background(), a, b)
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	if err := svc.AcceptRequest(context.Background(), b, req.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := svc.RemoveFriend(context.Background(), b, a); err != nil {
		t.Fatalf("remove: %v", err)
	}

	friends, err := svc.ListFriends(context.Background(), a)
	if err != nil {
		t.Fatalf("list friends: %v", err)
	}
	if len(friends) != 0 {
		t.Fatalf("expected no friends after removal, got %d", len(friends))
	}
}

func TestSendMessageValidation(t *testing.T) {
	svc, usersSvc := newSocialService(t)
	a := registerUser(t, usersSvc, "zhangsan")
	b := registerUser(t, usersSvc, "lisi")

	if _, err := svc.SendMessage(context.Background(), a, b, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := svc.SendMessage(context.Background(), a, "missing", "你好"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestConversationMarksRead(t *testing.T) {
	svc, usersSvc := newSocialService(t)
	a := registerUser(t, usersSvc, "zhangsan")
	b := registerUser(t, usersSvc, "lisi")

	if _, err := svc.SendMessage(context.Background(), a, b, "最近行情怎么样"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.SendMessage(context.Background(), a, b, "有空聊聊"); err != nil {
		t.Fatalf("send: %v", err)
	}

	n, err := svc.UnreadCount(context.Background(), b)
	if err != nil {
		t.Fatalf("unread: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 unread, got %d", n)
	}

	msgs, err := svc.Conversation(context.Background(), b, a)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "最近行情怎么样" {
		t.Fatalf("expected oldest-first ordering, got %q first", msgs[0].Content)
	}

	n, err = svc.UnreadCount(context.Background(), b)
	if err != nil {
		t.Fatalf("unread after read: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 unread after reading, got %d", n)
	}
}

func TestRecentChatsOrder(t *testing.T) {
	svc, usersSvc := newSocialService(t)
	a := registerUser(t, usersSvc, "zhangsan")
	b := registerUser(t, usersSvc, "lisi")
	c := registerUser(t, usersSvc, "wangwu")

	if _, err := svc.SendMessage(context.Background(), a, b, "一"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.SendMessage(context.Background(), c, a, "二"); err != nil {
		t.Fatalf("send: %v", err)
	}

	partners, err := svc.RecentChats(context.Background(), a)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(partners) != 2 {
		t.Fatalf("expected 2 partners, got %d", len(partners))
	}
	if partners[0].Username != "wangwu" || partners[1].Username != "lisi" {
		t.Fatalf("unexpected partner order: %+v", partners)
	}
}
