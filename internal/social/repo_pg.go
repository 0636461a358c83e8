package social

import (
	"context"
	"database/sql"
	"errors"
)

type PGFriendsRepo struct {
	DB *sql.DB
}

func (r *PGFriendsRepo) Create(ctx context.Context, f Friend) error {
	const query = `
INSERT INTO friends (id, user_id, friend_id, status, created_at)
VALUES ($1, $2, $3, $4, now())`
	_, err := r.DB.ExecContext(ctx, query, f.ID, f.UserID, f.FriendID, f.Status)
	return err
}

func (r *PGFriendsRepo) GetByID(ctx context.Context, id string) (Friend, error) {
	const query = `
SELECT id, user_id, friend_id, status, created_at
FROM friends
WHERE id = $1
LIMIT 1`
	return scanFriend(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGFriendsRepo) FindBetween(ctx context.Context, a, b string) (Friend, error) {
	const query = `
SELECT id, user_id, friend_id, status, created_at
FROM friends
WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
LIMIT 1`
	return scanFriend(r.DB.QueryRowContext(ctx, query, a, b))
}

func (r *PGFriendsRepo) UpdateStatus(ctx context.Context, id, status string) error {
	const query = `UPDATE friends SET status = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGFriendsRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM friends WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}

func (r *PGFriendsRepo) DeleteBetween(ctx context.Context, a, b string) error {
	const query = `
DELETE FROM friends
WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`
	_, err := r.DB.ExecContext(ctx, query, a, b)
	return err
}

func (r *PGFriendsRepo) ListAccepted(ctx context.Context, userID string) ([]Friend, error) {
	const query = `
SELECT id, user_id, friend_id, status, created_at
FROM friends
WHERE status = 'accepted' AND (user_id = $1 OR friend_id = $1)
ORDER BY created_at`
	return r.list(ctx, query, userID)
}

func (r *PGFriendsRepo) ListIncomingPending(ctx context.Context, userID string) ([]Friend, error) {
	const query = `
SELECT id, user_id, friend_id, status, created_at
FROM friends
WHERE status = 'pending' AND friend_id = $1
ORDER BY created_at`
	return r.list(ctx, query, userID)
}

func (r *PGFriendsRepo) list(ctx context.Context, query, userID string) ([]Friend, error) {
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Friend
	for rows.Next() {
		var f Friend
		if err := rows.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

type friendScanner interface {
	Scan(dest ...any) error
}

func scanFriend(row friendScanner) (Friend, error) {
	var f Friend
	err := row.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Friend{}, ErrNotFound
		}
		return Friend{}, err
	}
	return f, nil
}

type PGMessagesRepo struct {
	DB *sql.DB
}

func (r *PGMessagesRepo) Create(ctx context.Context, m Message) error {
	const query = `
INSERT INTO messages (id, sender_id, receiver_id, content, sent_at, read)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query, m.ID, m.SenderID, m.ReceiverID, m.Content, m.SentAt, m.Read)
	return err
}

func (r *PGMessagesRepo) Conversation(ctx context.Context, a, b string) ([]Message, error) {
	const query = `
SELECT id, sender_id, receiver_id, content, sent_at, read
FROM messages
WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
ORDER BY sent_at`
	rows, err := r.DB.QueryContext(ctx, query, a, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.SentAt, &m.Read); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PGMessagesRepo) MarkRead(ctx context.Context, senderID, receiverID string) error {
	const query = `
UPDATE messages SET read = true
WHERE sender_id = $1 AND receiver_id = $2 AND read = false`
	_, err := r.DB.ExecContext(ctx, query, senderID, receiverID)
	return err
}

func (r *PGMessagesRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	const query = `SELECT count(*) FROM messages WHERE receiver_id = $1 AND read = false`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PGMessagesRepo) RecentPartners(ctx context.Context, userID string) ([]string, error) {
	const query = `
SELECT partner FROM (
  SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS partner,
         max(sent_at) AS last_sent
  FROM messages
  WHERE sender_id = $1 OR receiver_id = $1
  GROUP BY 1
) t
ORDER BY last_sent DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var partner string
		if err := rows.Scan(&partner); err != nil {
			return nil, err
		}
		out = append(out, partner)
	}
	return out, rows.Err()
}
