package social

import (
	"context"
	"sort"
	"sync"
)

type MemoryFriendsRepo struct {
	mu      sync.RWMutex
	friends map[string]Friend
}

func NewMemoryFriendsRepo() *MemoryFriendsRepo {
	return &MemoryFriendsRepo{friends: make(map[string]Friend)}
}

func (r *MemoryFriendsRepo) Create(ctx context.Context, f Friend) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.friends[f.ID] = f
	r.mu.Unlock()
	return nil
}

func (r *MemoryFriendsRepo) GetByID(ctx context.Context, id string) (Friend, error) {
	if err := ctx.Err(); err != nil {
		return Friend{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.friends[id]
	if !ok {
		return Friend{}, ErrNotFound
	}
	return f, nil
}

func (r *MemoryFriendsRepo) FindBetween(ctx context.Context, a, b string) (Friend, error) {
	if err := ctx.Err(); err != nil {
		return Friend{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.friends {
		if (f.UserID == a && f.FriendID == b) || (f.UserID == b && f.FriendID == a) {
			return f, nil
		}
	}
	return Friend{}, ErrNotFound
}

func (r *MemoryFriendsRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.friends[id]
	if !ok {
		return ErrNotFound
	}
	f.Status = status
	r.friends[id] = f
	return nil
}

func (r *MemoryFriendsRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.friends, id)
	r.mu.Unlock()
	return nil
}

func (r *MemoryFriendsRepo) DeleteBetween(ctx context.Context, a, b string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, f := range r.friends {
		if (f.UserID == a && f.FriendID == b) || (f.UserID == b && f.FriendID == a) {
			delete(r.friends, id)
		}
	}
	return nil
}

func (r *MemoryFriendsRepo) ListAccepted(ctx context.Context, userID string) ([]Friend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Friend
	for _, f := range r.friends {
		if f.Status == StatusAccepted && (f.UserID == userID || f.FriendID == userID) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryFriendsRepo) ListIncomingPending(ctx context.Context, userID string) ([]Friend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Friend
	for _, f := range r.friends {
		if f.Status == StatusPending && f.FriendID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type MemoryMessagesRepo struct {
	mu       sync.RWMutex
	messages []Message
}

func NewMemoryMessagesRepo() *MemoryMessagesRepo {
	return &MemoryMessagesRepo{}
}

func (r *MemoryMessagesRepo) Create(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.messages = append(r.messages, m)
	r.mu.Unlock()
	return nil
}

func (r *MemoryMessagesRepo) Conversation(ctx context.Context, a, b string) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Message
	for _, m := range r.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out, nil
}

func (r *MemoryMessagesRepo) MarkRead(ctx context.Context, senderID, receiverID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID {
			r.messages[i].Read = true
		}
	}
	return nil
}

func (r *MemoryMessagesRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, m := range r.messages {
		if m.ReceiverID == userID && !m.Read {
			n++
		}
	}
	return n, nil
}

func (r *MemoryMessagesRepo) RecentPartners(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	// Walk newest first so the most recent conversation leads.
	seen := make(map[string]struct{})
	var out []string
	for i := len(r.messages) - 1; i >= 0; i-- {
		m := r.messages[i]
		var partner string
		switch userID {
		case m.SenderID:
			partner = m.ReceiverID
		case m.ReceiverID:
			partner = m.SenderID
		default:
			continue
		}
		if _, ok := seen[partner]; ok {
			continue
		}
		seen[partner] = struct{}{}
		out = append(out, partner)
	}
	return out, nil
}
