package advisor

import (
	"testing"

	"github.com/shopspring/decimal"

	"advisor-backend/internal/market"
)

func TestStrategyTemplatesCoverFullSpace(t *testing.T) {
	styles := []RiskStyle{Aggressive, Defensive}
	conditions := []market.Condition{market.Bull, market.Choppy, market.Bear}
	for _, style := range styles {
		byCondition, ok := strategyTemplates[style]
		if !ok {
			t.Fatalf("missing templates for style %s", style)
		}
		for _, cond := range conditions {
			tpl, ok := byCondition[cond]
			if !ok {
				t.Fatalf("missing template for %s × %s", style, cond)
			}
			if tpl.Name == "" {
				t.Fatalf("template %s × %s has no name", style, cond)
			}
			if len(tpl.Allocations) == 0 {
				t.Fatalf("template %s × %s has no products", style, cond)
			}
			if len(tpl.Picks) == 0 {
				t.Fatalf("template %s × %s has no stock picks", style, cond)
			}
			if tpl.Tactical == "" {
				t.Fatalf("template %s × %s has no tactical advice", style, cond)
			}
		}
	}
}

func TestStrategyFractionsSumWithinBudget(t *testing.T) {
	one := decimal.NewFromInt(1)
	for style, byCondition := range strategyTemplates {
		for cond, tpl := range byCondition {
			sum := decimal.Zero
			for _, alloc := range tpl.Allocations {
				sum = sum.Add(alloc.Fraction)
			}
			if sum.GreaterThan(one) {
				t.Fatalf("template %s × %s fractions sum to %s, over budget", style, cond, sum)
			}
		}
	}
}

func TestAllocationsReferenceKnownInstruments(t *testing.T) {
	for style, byCondition := range strategyTemplates {
		for cond, tpl := range byCondition {
			for _, alloc := range tpl.Allocations {
				inst, ok := etfDatabase[alloc.ETF]
				if !ok {
					t.Fatalf("template %s × %s references unknown instrument %q", style, cond, alloc.ETF)
				}
				if inst.Code == "" || inst.Name == "" {
					t.Fatalf("instrument %q is incomplete", alloc.ETF)
				}
				if alloc.Kind == allocMonthly && !alloc.Cap.IsPositive() {
					t.Fatalf("monthly line %q in %s × %s has no cap", alloc.ETF, style, cond)
				}
			}
		}
	}
}

func TestQuizQuestionsWellFormed(t *testing.T) {
	if len(quizQuestions) != 8 {
		t.Fatalf("expected 8 questions, got %d", len(quizQuestions))
	}
	for _, q := range quizQuestions {
		if len(q.Options) != 4 {
			t.Fatalf("question %d has %d options", q.ID, len(q.Options))
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			t.Fatalf("question %d has out-of-range answer index %d", q.ID, q.Correct)
		}
	}
}

func TestQuestionsHideCorrectFlags(t *testing.T) {
	qs := Questions()
	if len(qs) != len(quizQuestions) {
		t.Fatalf("expected %d questions, got %d", len(quizQuestions), len(qs))
	}
	for i, q := range qs {
		if q.ID != quizQuestions[i].ID {
			t.Fatalf("question %d has id %d", i, q.ID)
		}
		if len(q.Options) != len(quizQuestions[i].Options) {
			t.Fatalf("question %d lost options", q.ID)
		}
	}
}
