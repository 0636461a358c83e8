package social

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"advisor-backend/internal/shared/server/middleware"
	"advisor-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the authenticated friends and messages endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/friends", h.listFriends)
	rg.GET("/friends/requests", h.listRequests)
	rg.POST("/friends/requests", h.sendRequest)
	rg.POST("/friends/requests/:id/accept", h.acceptRequest)
	rg.POST("/friends/requests/:id/reject", h.rejectRequest)
	rg.DELETE("/friends/:friendId", h.removeFriend)

	rg.GET("/messages/unread-count", h.unreadCount)
	rg.GET("/messages/recent", h.recentChats)
	rg.GET("/messages/:userId", h.conversation)
	rg.POST("/messages/:userId", h.sendMessage)
	rg.POST("/messages/:userId/read", h.markRead)
}

func (h *Handler) listFriends(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	friends, err := h.Svc.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list friends", nil)
		return
	}
	respond.OK(c, gin.H{"friends": friends})
}

func (h *Handler) listRequests(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	requests, err := h.Svc.ListRequests(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list friend requests", nil)
		return
	}
	respond.OK(c, gin.H{"requests": requests})
}

type friendRequestBody struct {
	FriendID string `json:"friendId"`
}

func (h *Handler) sendRequest(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req friendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil || req.FriendID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "friendId is required", nil)
		return
	}

	f, err := h.Svc.SendFriendRequest(c.Request.Context(), userID, req.FriendID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfRequest):
			respond.Error(c, http.StatusBadRequest, "self_request", "不能添加自己为好友", nil)
		case errors.Is(err, ErrUserNotFound):
			respond.Error(c, http.StatusNotFound, "user_not_found", "用户不存在", nil)
		case errors.Is(err, ErrAlreadyLinked):
			respond.Error(c, http.StatusConflict, "already_linked", "好友请求已存在", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to send friend request", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"requestId": f.ID, "status": f.Status})
}

func (h *Handler) acceptRequest(c *gin.Context) {
	h.resolveRequest(c, h.Svc.AcceptRequest, "accepted")
}

func (h *Handler) rejectRequest(c *gin.Context) {
	h.resolveRequest(c, h.Svc.RejectRequest, "rejected")
}

func (h *Handler) resolveRequest(c *gin.Context, resolve func(context.Context, string, string) error, outcome string) {
	userID := middleware.UserIDFromContext(c)
	requestID := c.Param("id")

	if err := resolve(c.Request.Context(), userID, requestID); err != nil {
		switch {
		case errors.Is(err, ErrRequestMissing):
			respond.Error(c, http.StatusNotFound, "request_not_found", "好友请求不存在", nil)
		case errors.Is(err, ErrNotAddressee):
			respond.Error(c, http.StatusForbidden, "not_addressee", "无权处理该好友请求", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update friend request", nil)
		}
		return
	}

	respond.OK(c, gin.H{"requestId": requestID, "status": outcome})
}

func (h *Handler) removeFriend(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	friendID := c.Param("friendId")

	if err := h.Svc.RemoveFriend(c.Request.Context(), userID, friendID); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to remove friend", nil)
		return
	}
	respond.OK(c, gin.H{"removed": friendID})
}

func (h *Handler) unreadCount(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	n, err := h.Svc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to count unread messages", nil)
		return
	}
	respond.OK(c, gin.H{"unread": n})
}

func (h *Handler) recentChats(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	partners, err := h.Svc.RecentChats(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list recent chats", nil)
		return
	}
	respond.OK(c, gin.H{"partners": partners})
}

func (h *Handler) conversation(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	partnerID := c.Param("userId")

	msgs, err := h.Svc.Conversation(c.Request.Context(), userID, partnerID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load conversation", nil)
		return
	}
	if msgs == nil {
		msgs = []Message{}
	}
	respond.OK(c, gin.H{"messages": msgs})
}

func (h *Handler) markRead(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	partnerID := c.Param("userId")

	if err := h.Svc.MarkConversationRead(c.Request.Context(), userID, partnerID); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to mark messages read", nil)
		return
	}
	respond.OK(c, gin.H{"read": true})
}

type sendMessageBody struct {
	Content string `json:"content"`
}

func (h *Handler) sendMessage(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	receiverID := c.Param("userId")

	var req sendMessageBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	msg, err := h.Svc.SendMessage(c.Request.Context(), userID, receiverID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			respond.Error(c, http.StatusBadRequest, "validation_error", "消息内容不能为空", nil)
		case errors.Is(err, ErrUserNotFound):
			respond.Error(c, http.StatusNotFound, "user_not_found", "用户不存在", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to send message", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, msg)
}
