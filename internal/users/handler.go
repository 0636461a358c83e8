package users

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	sharedauth "advisor-backend/internal/shared/auth"
	"advisor-backend/internal/shared/server/middleware"
	"advisor-backend/internal/shared/server/respond"
	"advisor-backend/internal/shared/storage/object"
)

const maxAvatarBytes = 2 << 20

// Handler wires HTTP handlers to the users service. Store may be nil
// when no object store is configured; avatar endpoints then report the
// feature as unavailable.
type Handler struct {
	Svc   *Service
	Store object.ObjectStore
}

func NewHandler(svc *Service, store object.ObjectStore) *Handler {
	return &Handler{Svc: svc, Store: store}
}

// RegisterAuthRoutes attaches the public register/login endpoints.
func (h *Handler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
}

// RegisterRoutes attaches the authenticated user endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/me", h.me)
	rg.PATCH("/users/me", h.updateMe)
	rg.GET("/users/search", h.search)
	rg.POST("/users/me/avatar", h.uploadAvatar)
	rg.GET("/users/:id/avatar", h.downloadAvatar)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "email_taken", "该邮箱已被注册", nil)
		case errors.Is(err, ErrUsernameTaken):
			respond.Error(c, http.StatusConflict, "username_taken", "该用户名已被使用", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register", nil)
		}
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "邮箱或密码错误", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *Handler) respondWithToken(c *gin.Context, status int, user User) {
	token, err := sharedauth.SignJWT(sharedauth.Claims{
		Sub:      user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	respond.JSON(c, status, gin.H{
		"token": token,
		"user":  toResponse(user),
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, toResponse(user))
}

type updateMeRequest struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
}

func (h *Handler) updateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.UpdateProfile(c.Request.Context(), userID, ProfileUpdate{
		Username: req.Username,
		Bio:      req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		case errors.Is(err, ErrUsernameTaken):
			respond.Error(c, http.StatusConflict, "username_taken", "该用户名已被使用", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		}
		return
	}
	respond.OK(c, toResponse(user))
}

func (h *Handler) search(c *gin.Context) {
	found, err := h.Svc.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search users", nil)
		return
	}

	out := make([]gin.H, 0, len(found))
	for _, user := range found {
		out = append(out, gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"bio":       user.Bio,
			"avatarUrl": avatarURL(user),
		})
	}
	respond.OK(c, gin.H{"users": out})
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	if h.Store == nil {
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "avatar storage not configured", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if !isImageName(fileHeader.Filename) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "avatar must be a png, jpg or webp image", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	storageKey, _, _, err := h.Store.Save(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store avatar", nil)
		return
	}

	user, err := h.Svc.SetAvatar(c.Request.Context(), userID, storageKey)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update avatar", nil)
		return
	}
	respond.OK(c, toResponse(user))
}

func (h *Handler) downloadAvatar(c *gin.Context) {
	if h.Store == nil {
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "avatar storage not configured", nil)
		return
	}
	user, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil || user.AvatarKey == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "avatar not found", nil)
		return
	}

	reader, err := h.Store.Open(c.Request.Context(), user.AvatarKey)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "avatar not found", nil)
		return
	}
	defer reader.Close()

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		c.Abort()
	}
}

func isImageName(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".webp"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func avatarURL(user User) string {
	if user.AvatarKey == "" {
		return ""
	}
	return "/api/v1/users/" + user.ID + "/avatar"
}

func toResponse(user User) gin.H {
	out := gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"bio":       user.Bio,
		"avatarUrl": avatarURL(user),
		"createdAt": user.CreatedAt,
	}
	if user.InvestGoal != "" || user.InvestRiskStyle != "" || user.InvestFundLevel != "" || user.InvestMarketCondition != "" {
		out["investmentProfile"] = gin.H{
			"goal":            user.InvestGoal,
			"riskTolerance":   user.InvestRiskStyle,
			"fundLevel":       user.InvestFundLevel,
			"marketCondition": user.InvestMarketCondition,
		}
	}
	return out
}
