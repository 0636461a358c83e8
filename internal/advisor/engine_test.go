package advisor

import (
	"strings"
	"testing"

	"advisor-backend/internal/market"
)

func TestRecommendTotalOverStrategySpace(t *testing.T) {
	styles := []RiskStyle{Aggressive, Defensive}
	conditions := []market.Condition{market.Bull, market.Choppy, market.Bear}
	for _, style := range styles {
		for _, cond := range conditions {
			rec := Recommend(style, cond, FundBetween5k20k, Intermediate)
			if rec.Strategy == "" {
				t.Fatalf("%s × %s produced empty strategy", style, cond)
			}
			if rec.MarketCondition != cond {
				t.Fatalf("%s × %s echoed condition %s", style, cond, rec.MarketCondition)
			}
			if len(rec.RecommendedProducts) == 0 {
				t.Fatalf("%s × %s produced no products", style, cond)
			}
			if len(rec.StockPicks) == 0 {
				t.Fatalf("%s × %s attached no stock picks", style, cond)
			}
		}
	}
}

func TestRecommendUnknownConditionDefaultsToChoppy(t *testing.T) {
	rec := Recommend(Aggressive, market.Condition(""), FundOver20k, Professional)
	if rec.MarketCondition != market.Choppy {
		t.Fatalf("expected %s, got %s", market.Choppy, rec.MarketCondition)
	}
	if !strings.Contains(rec.Strategy, "震荡市") {
		t.Fatalf("expected choppy branch, got %q", rec.Strategy)
	}
}

func TestRecommendUnknownStyleFallsToDefensive(t *testing.T) {
	rec := Recommend(RiskStyle("随便"), market.Bull, FundOver20k, Professional)
	if !strings.Contains(rec.Strategy, "防守反击") {
		t.Fatalf("expected defensive branch, got %q", rec.Strategy)
	}
}

func TestAggressiveBullAllocations(t *testing.T) {
	rec := Recommend(Aggressive, market.Bull, FundOver20k, Professional)
	if !strings.Contains(rec.Strategy, "全仓") {
		t.Fatalf("expected full-attack branch, got %q", rec.Strategy)
	}

	first := rec.RecommendedProducts[0]
	if first.Code != "512880" {
		t.Fatalf("expected 证券ETF first, got %s", first.Code)
	}
	if first.SuggestedAmount != "配置7500元" {
		t.Fatalf("expected 配置7500元, got %q", first.SuggestedAmount)
	}

	last := rec.RecommendedProducts[len(rec.RecommendedProducts)-1]
	if last.SuggestedAmount != "配置剩余部分" {
		t.Fatalf("expected remainder line, got %q", last.SuggestedAmount)
	}
}

func TestAggressiveBearMonthlyCaps(t *testing.T) {
	rec := Recommend(Aggressive, market.Bear, FundOver20k, Professional)
	// 30000 × 0.15 = 4500 capped at 1000.
	if got := rec.RecommendedProducts[0].SuggestedAmount; got != "每月定投1000元" {
		t.Fatalf("expected capped monthly 1000, got %q", got)
	}
	// 30000 × 0.10 = 3000 capped at 800.
	if got := rec.RecommendedProducts[2].SuggestedAmount; got != "每月定投800元" {
		t.Fatalf("expected capped monthly 800, got %q", got)
	}

	rec = Recommend(Aggressive, market.Bear, FundUnder5k, Professional)
	// 5000 × 0.15 = 750 stays under the cap.
	if got := rec.RecommendedProducts[0].SuggestedAmount; got != "每月定投750元" {
		t.Fatalf("expected uncapped monthly 750, got %q", got)
	}
}

func TestDefensiveBearMonthlyCaps(t *testing.T) {
	rec := Recommend(Defensive, market.Bear, FundBetween5k20k, Intermediate)
	// 15000 × 0.25 = 3750 capped at 1500.
	if got := rec.RecommendedProducts[1].SuggestedAmount; got != "每月定投1500元" {
		t.Fatalf("expected capped monthly 1500, got %q", got)
	}
	if got := rec.RecommendedProducts[0].SuggestedAmount; got != "配置7500元" {
		t.Fatalf("expected lump 7500, got %q", got)
	}
}

func TestStockPicksAttachRegardlessOfKnowledge(t *testing.T) {
	rec := Recommend(Aggressive, market.Bull, FundUnder5k, Novice)
	if len(rec.StockPicks) == 0 {
		t.Fatal("engine must attach picks even for novice users")
	}
	if rec.RiskWarning != knowledgeAdvisories[Novice].Warning {
		t.Fatalf("unexpected risk warning %q", rec.RiskWarning)
	}
	if rec.KnowledgeAssessment != knowledgeAdvisories[Novice].Assessment {
		t.Fatalf("unexpected assessment %q", rec.KnowledgeAssessment)
	}
}
