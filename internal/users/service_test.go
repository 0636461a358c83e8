package users

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	user, err := svc.Register(context.Background(), "zhangsan", "zhangsan@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated user id")
	}
	if user.PasswordHash == "secret123" {
		t.Fatal("password must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	got, err := svc.Login(context.Background(), "zhangsan@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}

	if _, err := svc.Login(context.Background(), "zhangsan@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Register(context.Background(), "zhangsan", "zhangsan@example.com", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Register(context.Background(), "lisi", "zhangsan@example.com", "secret123"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "ZhangSan", "other@example.com", "secret123"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Register(context.Background(), "", "a@b.com", "secret123"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "zhangsan", "not-an-email", "secret123"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "zhangsan", "a@b.com", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestResetPasswordByEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Register(context.Background(), "zhangsan", "zhangsan@example.com", "oldpass1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ResetPasswordByEmail(context.Background(), "zhangsan@example.com", "abc"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
	if err := svc.ResetPasswordByEmail(context.Background(), "zhangsan@example.com", "newpass1"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, err := svc.Login(context.Background(), "zhangsan@example.com", "oldpass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("old password should no longer work")
	}
	if _, err := svc.Login(context.Background(), "zhangsan@example.com", "newpass1"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	user, err := svc.Register(context.Background(), "zhangsan", "zhangsan@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "lisi", "lisi@example.com", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	bio := "价值投资爱好者"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{Bio: &bio})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Bio != bio {
		t.Fatalf("expected bio %q, got %q", bio, updated.Bio)
	}

	taken := "lisi"
	if _, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{Username: &taken}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUpsertFromGoogle(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	user, err := svc.UpsertFromGoogle(context.Background(), "sub-123456", "wang@example.com", "老王")
	if err != nil {
		t.Fatalf("upsert from google: %v", err)
	}
	if user.ID != "google:sub-123456" {
		t.Fatalf("expected stable oauth id, got %s", user.ID)
	}
	if user.PasswordHash != "" {
		t.Fatal("oauth accounts must not carry a password hash")
	}

	// Second login resolves the same account.
	again, err := svc.UpsertFromGoogle(context.Background(), "sub-123456", "wang@example.com", "老王")
	if err != nil {
		t.Fatalf("repeat upsert: %v", err)
	}
	if again.ID != user.ID {
		t.Fatalf("expected %s, got %s", user.ID, again.ID)
	}

	if _, err := svc.Login(context.Background(), "wang@example.com", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("password login must stay closed for oauth accounts")
	}
}

func TestUpsertFromGoogleDedupesUsername(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Register(context.Background(), "老王", "local@example.com", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.UpsertFromGoogle(context.Background(), "sub-abcdef", "wang@example.com", "老王")
	if err != nil {
		t.Fatalf("upsert from google: %v", err)
	}
	if user.Username == "老王" {
		t.Fatal("expected deduplicated username")
	}
}

func TestSearchMatchesSubstring(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	for _, u := range []struct{ name, email string }{
		{"zhangsan", "a@example.com"},
		{"zhanglei", "b@example.com"},
		{"lisi", "c@example.com"},
	} {
		if _, err := svc.Register(context.Background(), u.name, u.email, "secret123"); err != nil {
			t.Fatalf("register %s: %v", u.name, err)
		}
	}

	found, err := svc.Search(context.Background(), "zhang")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}

	all, err := svc.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("search all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}
}
