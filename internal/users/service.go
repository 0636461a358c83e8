package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
)

const minPasswordLength = 6

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates a local account. Username and email are unique,
// case-insensitively; the password is stored as a bcrypt hash.
func (s *Service) Register(ctx context.Context, username, email, password string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return User{}, fmt.Errorf("%w: username and email are required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return User{}, fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

// Login verifies credentials by email. Accounts created through OAuth
// have no password hash and always fail the comparison.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

// ProfileUpdate is a partial profile edit; nil fields stay untouched.
type ProfileUpdate struct {
	Username *string
	Bio      *string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if username == "" {
			return User{}, fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
		}
		if !strings.EqualFold(username, user.Username) {
			if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
				return User{}, ErrUsernameTaken
			} else if !errors.Is(err, ErrNotFound) {
				return User{}, err
			}
		}
		user.Username = username
	}
	if upd.Bio != nil {
		user.Bio = strings.TrimSpace(*upd.Bio)
	}
	if err := s.Repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) Search(ctx context.Context, query string) ([]User, error) {
	return s.Repo.Search(ctx, strings.TrimSpace(query), 50)
}

// SetAvatar records the storage key of a freshly uploaded avatar.
func (s *Service) SetAvatar(ctx context.Context, userID, storageKey string) (User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	user.AvatarKey = storageKey
	if err := s.Repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// UpdateInvestmentProfile saves the questionnaire echo on the user row.
func (s *Service) UpdateInvestmentProfile(ctx context.Context, userID string, profile InvestmentProfile) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.UpdateInvestmentProfile(ctx, userID, profile)
}

// ResetPasswordByEmail replaces the password for the account holding
// the given email. Used by the password reset flow after token checks.
func (s *Service) ResetPasswordByEmail(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, user.ID, string(hash))
}

// EmailExists reports whether an account holds the given email.
func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// UpsertFromGoogle resolves an OAuth identity to a local account,
// creating one on first login. The account carries no password hash,
// so password login stays closed for it.
func (s *Service) UpsertFromGoogle(ctx context.Context, sub, email, name string) (User, error) {
	if sub == "" || email == "" {
		return User{}, fmt.Errorf("%w: oauth identity is incomplete", ErrInvalidInput)
	}
	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	username := strings.TrimSpace(name)
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		suffix := sub
		if len(suffix) > 6 {
			suffix = suffix[len(suffix)-6:]
		}
		username = username + "-" + suffix
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	user := User{
		ID:       "google:" + sub,
		Username: username,
		Email:    email,
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}
