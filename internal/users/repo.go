package users

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

// InvestmentProfile is the questionnaire echo stored on the user row.
type InvestmentProfile struct {
	Goal            string
	RiskStyle       string
	FundLevel       string
	MarketCondition string
}

type Repo interface {
	Create(ctx context.Context, user User) error
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, user User) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateInvestmentProfile(ctx context.Context, userID string, profile InvestmentProfile) error
	Search(ctx context.Context, query string, limit int) ([]User, error)
}
