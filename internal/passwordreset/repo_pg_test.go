package passwordreset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoSaveAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	expires := time.Now().UTC().Add(30 * time.Minute)
	mock.ExpectExec("INSERT INTO reset_tokens").
		WithArgs("token-1", "zhangsan@example.com", expires).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &PGRepo{DB: db}
	err = repo.Save(context.Background(), Token{
		Token:     "token-1",
		Email:     "zhangsan@example.com",
		ExpiresAt: expires,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	rows := sqlmock.NewRows([]string{"token", "email", "expires_at", "created_at"}).
		AddRow("token-1", "zhangsan@example.com", expires, time.Now().UTC())
	mock.ExpectQuery("SELECT token, email, expires_at, created_at").
		WithArgs("token-1").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "token-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Email != "zhangsan@example.com" {
		t.Fatalf("unexpected email %q", got.Email)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT token, email, expires_at, created_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"token", "email", "expires_at", "created_at"}))

	repo := &PGRepo{DB: db}
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
