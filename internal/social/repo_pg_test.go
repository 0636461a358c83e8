package social

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var friendColumns = []string{"id", "user_id", "friend_id", "status", "created_at"}

func TestPGFriendsFindBetween(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, user_id, friend_id, status, created_at").
		WithArgs("u1", "u2").
		WillReturnRows(sqlmock.NewRows(friendColumns).AddRow("f1", "u2", "u1", "accepted", now))

	repo := &PGFriendsRepo{DB: db}
	f, err := repo.FindBetween(context.Background(), "u1", "u2")
	if err != nil {
		t.Fatalf("find between: %v", err)
	}
	if f.ID != "f1" || f.Status != StatusAccepted {
		t.Fatalf("unexpected friend: %+v", f)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGFriendsUpdateStatusMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE friends SET status").
		WithArgs("missing", StatusAccepted).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGFriendsRepo{DB: db}
	if err := repo.UpdateStatus(context.Background(), "missing", StatusAccepted); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGMessagesCreateArgs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	sent := time.Now()
	mock.ExpectExec("INSERT INTO messages").
		WithArgs("m1", "u1", "u2", "你好", sent, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGMessagesRepo{DB: db}
	err = repo.Create(context.Background(), Message{
		ID: "m1", SenderID: "u1", ReceiverID: "u2", Content: "你好", SentAt: sent,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGMessagesUnreadCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT count").
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := &PGMessagesRepo{DB: db}
	n, err := repo.UnreadCount(context.Background(), "u2")
	if err != nil {
		t.Fatalf("unread: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
