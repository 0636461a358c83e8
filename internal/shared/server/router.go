package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"advisor-backend/internal/advisor"
	googleauth "advisor-backend/internal/auth"
	"advisor-backend/internal/market"
	"advisor-backend/internal/passwordreset"
	"advisor-backend/internal/services/health"
	"advisor-backend/internal/shared/config"
	"advisor-backend/internal/shared/metrics"
	"advisor-backend/internal/shared/server/middleware"
	"advisor-backend/internal/social"
	"advisor-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up. Nil handlers are
// skipped, which keeps partial wiring usable in tests.
type RouterDeps struct {
	Config         config.Config
	Health         *health.Service
	MarketHandler  *market.Handler
	AdvisorHandler *advisor.Handler
	UsersHandler   *users.Handler
	ResetHandler   *passwordreset.Handler
	SocialHandler  *social.Handler
	GoogleAuth     *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(authRateLimits()),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			c.JSON(http.StatusOK, deps.Health.Status(c.Request.Context()))
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	if deps.MarketHandler != nil {
		deps.MarketHandler.RegisterRoutes(api)
	}
	if deps.AdvisorHandler != nil {
		deps.AdvisorHandler.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterAuthRoutes(api)
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.ResetHandler != nil {
		deps.ResetHandler.RegisterRoutes(api)
	}
	if deps.SocialHandler != nil {
		deps.SocialHandler.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	return r
}

// authRateLimits throttles credential and reset endpoints per client;
// everything else passes through.
func authRateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"AUTH":  {Rate: 1, Burst: 10},
			"RESET": {Rate: 0.2, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			path := c.Request.URL.Path
			switch {
			case path == "/api/v1/auth/register" || path == "/api/v1/auth/login":
				return "AUTH"
			case path == "/api/v1/auth/password/forgot":
				return "RESET"
			default:
				return ""
			}
		},
		DefaultGroup: "NONE",
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
