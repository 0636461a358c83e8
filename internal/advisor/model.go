package advisor

import "advisor-backend/internal/market"

// RiskStyle is the user's declared play style.
type RiskStyle string

const (
	Aggressive RiskStyle = "无限进攻"
	Defensive  RiskStyle = "防守反击"
)

// Valid reports whether s is a known risk style.
func (s RiskStyle) Valid() bool {
	return s == Aggressive || s == Defensive
}

// Goal is the user's declared investment goal. It is echoed to the
// profile but drives no strategy branching.
type Goal string

const (
	GoalShortTermTitle Goal = "短期冲冠"
	GoalLongTermGiant  Goal = "长期豪门"
	GoalSteadyOps      Goal = "运营维稳"
)

// Valid reports whether g is a known goal.
func (g Goal) Valid() bool {
	switch g {
	case GoalShortTermTitle, GoalLongTermGiant, GoalSteadyOps:
		return true
	}
	return false
}

// FundLevel is the user's declared fund size bracket.
type FundLevel string

const (
	FundUnder5k      FundLevel = "5000以下"
	FundBetween5k20k FundLevel = "5000-20000"
	FundOver20k      FundLevel = "20000以上"
)

// Valid reports whether f is a known fund level.
func (f FundLevel) Valid() bool {
	switch f {
	case FundUnder5k, FundBetween5k20k, FundOver20k:
		return true
	}
	return false
}

// Budget maps the bracket to the representative amount used for
// allocation math.
func (f FundLevel) Budget() int64 {
	switch f {
	case FundUnder5k:
		return 5000
	case FundBetween5k20k:
		return 15000
	default:
		return 30000
	}
}

// KnowledgeLevel is the graded quiz outcome.
type KnowledgeLevel string

const (
	Novice       KnowledgeLevel = "新手"
	Beginner     KnowledgeLevel = "入门"
	Intermediate KnowledgeLevel = "进阶"
	Professional KnowledgeLevel = "专业"
)

// ShowStockPicks reports whether individual stock picks are shown to a
// user at this level. Novice and Beginner users only see fund products.
func (k KnowledgeLevel) ShowStockPicks() bool {
	return k != Novice && k != Beginner
}

// Product is one recommended instrument line.
type Product struct {
	Type            string `json:"type"`
	Name            string `json:"name"`
	Code            string `json:"code"`
	Reason          string `json:"reason"`
	RiskLevel       string `json:"riskLevel"`
	SuggestedAmount string `json:"suggestedAmount"`
}

// StockPick is one individual stock suggestion.
type StockPick struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
	Sector string `json:"sector"`
}

// Recommendation is the full engine output. StockPicks are always
// attached here; visibility gating happens at the response layer.
type Recommendation struct {
	Strategy            string           `json:"strategy"`
	MarketCondition     market.Condition `json:"marketCondition"`
	KnowledgeLevel      KnowledgeLevel   `json:"knowledgeLevel"`
	RecommendedProducts []Product        `json:"recommendedProducts"`
	StockPicks          []StockPick      `json:"stockPicks"`
	RiskWarning         string           `json:"riskWarning"`
	TacticalAdvice      string           `json:"tacticalAdvice"`
	KnowledgeAssessment string           `json:"knowledgeAssessment"`
}

// Question is one quiz question as served to clients. Correct flags
// stay server-side.
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Profile is the coarse questionnaire echo persisted on the user record.
type Profile struct {
	Goal            Goal             `json:"goal"`
	RiskStyle       RiskStyle        `json:"riskStyle"`
	FundLevel       FundLevel        `json:"fundLevel"`
	MarketCondition market.Condition `json:"marketCondition"`
}
