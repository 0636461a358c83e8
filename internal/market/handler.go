package market

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"advisor-backend/internal/shared/server/respond"
)

// Handler serves the market snapshot endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches market routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/market", h.getMarket)
}

type analysisPayload struct {
	Analysis
	// Kept for older clients that read the three-month field.
	AvgThreeMonthChange float64 `json:"avgThreeMonthChange"`
	SixMonthChange      float64 `json:"sixMonthChange"`
	IndexUsed           string  `json:"indexUsed"`
	PeriodUsed          string  `json:"periodUsed"`
}

type marketPayload struct {
	Snapshot
	Analysis    analysisPayload `json:"analysis"`
	LastUpdated string          `json:"lastUpdated"`
}

func (h *Handler) getMarket(c *gin.Context) {
	snap, analysis, updated, ok := h.Svc.Snapshot()
	if !ok {
		// Pending or every fetch failed so far; try once on demand.
		if err := h.Svc.Refresh(c.Request.Context()); err != nil {
			respond.JSON(c, http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "获取市场数据失败",
				"fallback": gin.H{
					"condition": Choppy,
					"reason":    "暂时无法获取实时数据，使用默认判断",
				},
			})
			return
		}
		snap, analysis, updated, _ = h.Svc.Snapshot()
	}

	respond.OK(c, gin.H{
		"success": true,
		"data": marketPayload{
			Snapshot: snap,
			Analysis: analysisPayload{
				Analysis:            analysis,
				AvgThreeMonthChange: snap.CS300Index.Change,
				SixMonthChange:      snap.CS300Index.Change,
				IndexUsed:           "沪深300",
				PeriodUsed:          "近半年",
			},
			LastUpdated: updated.UTC().Format(time.RFC3339),
		},
	})
}
