package passwordreset

import (
	"context"
	"errors"
	"testing"
	"time"

	"advisor-backend/internal/queue"
	"advisor-backend/internal/users"
)

func newResetService(t *testing.T) (*Service, *users.Service, *queue.MemoryClient) {
	t.Helper()
	usersSvc := users.NewService(users.NewMemoryRepo())
	q := queue.NewMemoryClient()
	svc := NewService(NewMemoryRepo(), usersSvc, q)
	return svc, usersSvc, q
}

func TestForgotUnknownEmail(t *testing.T) {
	svc, _, q := newResetService(t)

	if _, err := svc.Forgot(context.Background(), "nobody@example.com", "req-1"); !errors.Is(err, ErrEmailNotFound) {
		t.Fatalf("expected ErrEmailNotFound, got %v", err)
	}
	if len(q.Drain()) != 0 {
		t.Fatal("no mail job should be enqueued for unknown emails")
	}
}

func TestForgotEnqueuesResetMail(t *testing.T) {
	svc, usersSvc, q := newResetService(t)
	if _, err := usersSvc.Register(context.Background(), "zhangsan", "zhangsan@example.com", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Forgot(context.Background(), "zhangsan@example.com", "req-1")
	if err != nil {
		t.Fatalf("forgot: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	jobs := q.Drain()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 mail job, got %d", len(jobs))
	}
	job := jobs[0]
	if job.Kind != queue.KindResetMail {
		t.Fatalf("expected kind %s, got %s", queue.KindResetMail, job.Kind)
	}
	if job.Email != "zhangsan@example.com" || job.ResetToken != token {
		t.Fatalf("unexpected job payload: %+v", job)
	}
}

func TestResetHappyPath(t *testing.T) {
	svc, usersSvc, _ := newResetService(t)
	if _, err := usersSvc.Register(context.Background(), "zhangsan", "zhangsan@example.com", "oldpass1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Forgot(context.Background(), "zhangsan@example.com", "req-1")
	if err != nil {
		t.Fatalf("forgot: %v", err)
	}

	if err := svc.Reset(context.Background(), token, "newpass1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := usersSvc.Login(context.Background(), "zhangsan@example.com", "newpass1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	// Token is single use.
	if err := svc.Reset(context.Background(), token, "another1"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound for reused token, got %v", err)
	}
}

func TestResetRejectsShortPassword(t *testing.T) {
	svc, usersSvc, _ := newResetService(t)
	if _, err := usersSvc.Register(context.Background(), "zhangsan", "zhangsan@example.com", "oldpass1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.Forgot(context.Background(), "zhangsan@example.com", "req-1")
	if err != nil {
		t.Fatalf("forgot: %v", err)
	}

	if err := svc.Reset(context.Background(), token, "abc"); !errors.Is(err, users.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// Validation failure must not consume the token.
	if _, err := svc.Validate(context.Background(), token); err != nil {
		t.Fatalf("token should survive a rejected password: %v", err)
	}
}

func TestExpiredTokenIsPurged(t *testing.T) {
	svc, usersSvc, _ := newResetService(t)
	if _, err := usersSvc.Register(context.Background(), "zhangsan", "zhangsan@example.com", "oldpass1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	expired := Token{
		Token:     "expired-token",
		Email:     "zhangsan@example.com",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	if err := svc.Repo.Save(context.Background(), expired); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := svc.Validate(context.Background(), "expired-token"); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	// The expired token is removed on detection.
	if _, err := svc.Repo.Get(context.Background(), "expired-token"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected purge, got %v", err)
	}
}
