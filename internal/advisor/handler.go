package advisor

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"advisor-backend/internal/market"
	"advisor-backend/internal/shared/server/middleware"
	"advisor-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the advisor service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches advisor routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/advisor/questions", h.listQuestions)
	rg.POST("/advisor/recommendations", h.createRecommendation)
}

func (h *Handler) listQuestions(c *gin.Context) {
	respond.OK(c, gin.H{"questions": Questions()})
}

type recommendationRequest struct {
	Goal            string `json:"goal"`
	RiskStyle       string `json:"riskStyle"`
	FundLevel       string `json:"fundLevel"`
	Answers         []int  `json:"answers"`
	MarketCondition string `json:"marketCondition"`
}

func (r recommendationRequest) validate() []map[string]string {
	var issues []map[string]string
	if !Goal(r.Goal).Valid() {
		issues = append(issues, map[string]string{"field": "goal", "issue": "unknown value"})
	}
	if !RiskStyle(r.RiskStyle).Valid() {
		issues = append(issues, map[string]string{"field": "riskStyle", "issue": "unknown value"})
	}
	if !FundLevel(r.FundLevel).Valid() {
		issues = append(issues, map[string]string{"field": "fundLevel", "issue": "unknown value"})
	}
	if r.MarketCondition != "" && !market.Condition(r.MarketCondition).Valid() {
		issues = append(issues, map[string]string{"field": "marketCondition", "issue": "unknown value"})
	}
	return issues
}

func (h *Handler) createRecommendation(c *gin.Context) {
	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if issues := req.validate(); len(issues) > 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid questionnaire", issues)
		return
	}

	userID := middleware.UserIDFromContext(c)
	rec, err := h.Svc.Submit(c.Request.Context(), userID, SubmissionInput{
		Goal:      Goal(req.Goal),
		RiskStyle: RiskStyle(req.RiskStyle),
		FundLevel: FundLevel(req.FundLevel),
		Answers:   req.Answers,
		Condition: market.Condition(req.MarketCondition),
	})
	if err != nil {
		var countErr ErrAnswerCount
		if errors.As(err, &countErr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", countErr.Error(), []map[string]string{
				{"field": "answers", "issue": "must answer every question"},
			})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build recommendation", nil)
		return
	}

	c.Set("marketCondition", string(rec.MarketCondition))
	c.Set("strategy", rec.Strategy)

	// Stock picks are an advanced feature; novice and beginner users
	// only see fund products.
	if !rec.KnowledgeLevel.ShowStockPicks() {
		rec.StockPicks = []StockPick{}
	}
	respond.OK(c, rec)
}
