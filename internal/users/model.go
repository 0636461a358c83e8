package users

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio,omitempty"`
	AvatarKey    string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Coarse questionnaire echo. Informational only; no strategy
	// branching reads it back.
	InvestGoal            string `json:"investGoal,omitempty"`
	InvestRiskStyle       string `json:"investRiskStyle,omitempty"`
	InvestFundLevel       string `json:"investFundLevel,omitempty"`
	InvestMarketCondition string `json:"investMarketCondition,omitempty"`
}
