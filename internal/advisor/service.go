package advisor

import (
	"context"
	"time"

	"advisor-backend/internal/market"
	"advisor-backend/internal/shared/metrics"
	"advisor-backend/internal/shared/telemetry"
)

// ProfileSaver persists the questionnaire echo on the user record.
type ProfileSaver interface {
	SaveInvestmentProfile(ctx context.Context, userID string, p Profile) error
}

// Service grades quiz submissions and assembles recommendations.
type Service struct {
	Market   *market.Service
	Profiles ProfileSaver
}

// NewService constructs a Service. profiles may be nil when no user
// store is wired (the recommendation itself never needs one).
func NewService(marketSvc *market.Service, profiles ProfileSaver) *Service {
	return &Service{Market: marketSvc, Profiles: profiles}
}

// SubmissionInput is a validated questionnaire submission. Condition
// may be empty; the resolved market state fills it in.
type SubmissionInput struct {
	Goal      Goal
	RiskStyle RiskStyle
	FundLevel FundLevel
	Answers   []int
	Condition market.Condition
}

// Submit grades the quiz, resolves the market condition and builds the
// recommendation. The profile echo is saved best-effort: a storage
// failure is logged but never blocks the recommendation.
func (s *Service) Submit(ctx context.Context, userID string, in SubmissionInput) (Recommendation, error) {
	start := time.Now()

	graded, err := Grade(in.Answers)
	if err != nil {
		return Recommendation{}, err
	}
	level := ScoreKnowledge(graded)

	condition := in.Condition
	if !condition.Valid() {
		condition = s.Market.State().Condition
	}

	rec := Recommend(in.RiskStyle, condition, in.FundLevel, level)

	if s.Profiles != nil && userID != "" {
		profile := Profile{
			Goal:            in.Goal,
			RiskStyle:       in.RiskStyle,
			FundLevel:       in.FundLevel,
			MarketCondition: rec.MarketCondition,
		}
		if err := s.Profiles.SaveInvestmentProfile(ctx, userID, profile); err != nil {
			telemetry.Warn("failed to save investment profile", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}

	metrics.IncRecommendations()
	metrics.ObserveRecommendationDurationMs(float64(time.Since(start)) / float64(time.Millisecond))
	telemetry.Info("recommendation generated", map[string]any{
		"user_id":          userID,
		"market_condition": string(rec.MarketCondition),
		"risk_style":       string(in.RiskStyle),
		"knowledge_level":  string(level),
	})
	return rec, nil
}
