package advisor

import (
	"fmt"

	"github.com/shopspring/decimal"

	"advisor-backend/internal/market"
)

// Recommend assembles a portfolio recommendation from the static
// catalog. It is total over the (style × condition) space: an unknown
// condition falls back to Choppy and anything but Aggressive selects
// the defensive branch. Stock picks attach unconditionally; the
// response layer decides whether to show them.
func Recommend(style RiskStyle, condition market.Condition, fund FundLevel, level KnowledgeLevel) Recommendation {
	if !condition.Valid() {
		condition = market.Choppy
	}
	if style != Aggressive {
		style = Defensive
	}

	tpl := strategyTemplates[style][condition]
	budget := decimal.NewFromInt(fund.Budget())

	products := make([]Product, 0, len(tpl.Allocations))
	for _, alloc := range tpl.Allocations {
		inst := etfDatabase[alloc.ETF]
		products = append(products, Product{
			Type:            "ETF",
			Name:            inst.Name,
			Code:            inst.Code,
			Reason:          alloc.Reason,
			RiskLevel:       alloc.Risk,
			SuggestedAmount: renderAmount(alloc, budget),
		})
	}

	advice := knowledgeAdvisories[level]
	return Recommendation{
		Strategy:            tpl.Name,
		MarketCondition:     condition,
		KnowledgeLevel:      level,
		RecommendedProducts: products,
		StockPicks:          append([]StockPick(nil), tpl.Picks...),
		RiskWarning:         advice.Warning,
		TacticalAdvice:      tpl.Tactical,
		KnowledgeAssessment: advice.Assessment,
	}
}

// renderAmount turns an allocation rule into the display string. Lump
// lines round fraction×budget to whole yuan; monthly lines cap the
// contribution before rounding; remainder lines carry no number.
func renderAmount(alloc allocation, budget decimal.Decimal) string {
	switch alloc.Kind {
	case allocMonthly:
		amount := budget.Mul(alloc.Fraction)
		if amount.GreaterThan(alloc.Cap) {
			amount = alloc.Cap
		}
		return fmt.Sprintf("每月定投%s元", amount.Round(0).String())
	case allocRemainder:
		return "配置剩余部分"
	default:
		return fmt.Sprintf("配置%s元", budget.Mul(alloc.Fraction).Round(0).String())
	}
}
