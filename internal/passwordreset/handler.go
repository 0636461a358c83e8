package passwordreset

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"advisor-backend/internal/shared/server/middleware"
	"advisor-backend/internal/shared/server/respond"
	"advisor-backend/internal/users"
)

// Handler wires HTTP handlers to the password reset service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches password reset routes. All routes are public.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/password/forgot", h.forgot)
	rg.GET("/auth/password/validate", h.validate)
	rg.POST("/auth/password/reset", h.reset)
}

type forgotRequest struct {
	Email string `json:"email"`
}

func (h *Handler) forgot(c *gin.Context) {
	var req forgotRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}

	_, err := h.Svc.Forgot(c.Request.Context(), req.Email, middleware.RequestIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrEmailNotFound) {
			respond.Error(c, http.StatusNotFound, "email_not_found", "该邮箱未注册", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start password reset", nil)
		return
	}
	respond.OK(c, gin.H{"message": "重置链接已发送到您的邮箱"})
}

func (h *Handler) validate(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "token is required", nil)
		return
	}
	if _, err := h.Svc.Validate(c.Request.Context(), token); err != nil {
		h.tokenError(c, err)
		return
	}
	respond.OK(c, gin.H{"valid": true})
}

type resetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (h *Handler) reset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "token and password are required", nil)
		return
	}

	if err := h.Svc.Reset(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, users.ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		h.tokenError(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "密码重置成功，请使用新密码登录"})
}

func (h *Handler) tokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTokenNotFound):
		respond.Error(c, http.StatusBadRequest, "invalid_token", "重置链接无效", nil)
	case errors.Is(err, ErrTokenExpired):
		respond.Error(c, http.StatusBadRequest, "token_expired", "重置链接已过期，请重新申请", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to reset password", nil)
	}
}
