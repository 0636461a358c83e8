package passwordreset

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"advisor-backend/internal/queue"
	"advisor-backend/internal/shared/metrics"
	"advisor-backend/internal/shared/telemetry"
	"advisor-backend/internal/users"
)

const tokenTTL = 30 * time.Minute

var (
	ErrEmailNotFound = errors.New("email not registered")
	ErrTokenExpired  = errors.New("reset token expired")
)

// Service issues and redeems password reset tokens. Tokens live for 30
// minutes and are removed on first use or on expired lookup.
type Service struct {
	Repo  Repo
	Users *users.Service
	Queue queue.Client
}

func NewService(repo Repo, usersSvc *users.Service, q queue.Client) *Service {
	return &Service{Repo: repo, Users: usersSvc, Queue: q}
}

// Forgot issues a reset token for a registered email and enqueues the
// reset mail job. Unknown emails return ErrEmailNotFound.
func (s *Service) Forgot(ctx context.Context, email, requestID string) (string, error) {
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrEmailNotFound
	}

	token := Token{
		Token:     uuid.NewString(),
		Email:     email,
		ExpiresAt: time.Now().UTC().Add(tokenTTL),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Save(ctx, token); err != nil {
		return "", err
	}

	msg := queue.Message{
		Kind:       queue.KindResetMail,
		Email:      email,
		ResetToken: token.Token,
		RequestID:  requestID,
		EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
		Version:    1,
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		telemetry.Error("failed to enqueue reset mail", map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return "", err
	}
	metrics.IncResetMailsEnqueued()
	telemetry.Info("reset mail enqueued", map[string]any{"email": email})
	return token.Token, nil
}

// Validate checks a token and returns it when still usable. Expired
// tokens are deleted on detection.
func (s *Service) Validate(ctx context.Context, token string) (Token, error) {
	t, err := s.Repo.Get(ctx, token)
	if err != nil {
		return Token{}, err
	}
	if t.Expired(time.Now().UTC()) {
		if err := s.Repo.Delete(ctx, token); err != nil {
			telemetry.Warn("failed to purge expired reset token", map[string]any{"error": err.Error()})
		}
		return Token{}, ErrTokenExpired
	}
	return t, nil
}

// Reset redeems a token and replaces the account password. The token
// is removed after use whether or not it was expired.
func (s *Service) Reset(ctx context.Context, token, newPassword string) error {
	t, err := s.Validate(ctx, token)
	if err != nil {
		return err
	}
	if err := s.Users.ResetPasswordByEmail(ctx, t.Email, newPassword); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, token); err != nil {
		telemetry.Warn("failed to delete used reset token", map[string]any{"error": err.Error()})
	}
	telemetry.Info("password reset completed", map[string]any{"email": t.Email})
	return nil
}
