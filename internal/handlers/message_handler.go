package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tattoospace/station-booking-backend/internal/database"
	"github.com/tattoospace/station-booking-backend/internal/middleware"
	"github.com/tattoospace/station-booking-backend/internal/models"
	"github.com/tattoospace/station-booking-backend/pkg/jwt"
)

// MessageHandler handles support messaging HTTP requests
type MessageHandler struct {
	messageRepo *database.MessageRepository
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageRepo *database.MessageRepository) *MessageHandler {
	return &MessageHandler{messageRepo: messageRepo}
}

// Send handles POST /api/v1/messages
// The sender identity and type come from the access token, never from
// the request body.
func (h *MessageHandler) Send(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	message := &models.Message{
		SenderID:     userCtx.UserID,
		ReceiverID:   req.ReceiverID,
		SenderType:   senderType(userCtx.Scope),
		ReceiverType: req.ReceiverType,
		Content:      req.Content,
	}

	if err := h.messageRepo.Create(message); err != nil {
		log.Printf("ERROR: Failed to send message from %s: %v", userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to send message",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent",
		"sent":    message,
	})
}

// List handles GET /api/v1/messages
// Returns every message the caller sent or received, oldest first.
func (h *MessageHandler) List(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	messages, err := h.messageRepo.GetForParticipant(userCtx.UserID)
	if err != nil {
		log.Printf("ERROR: Failed to get messages for %s: %v", userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to retrieve messages",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
	})
}

// MarkRead handles POST /api/v1/messages/:id/read
// Only the message's receiver may mark it read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)
	messageID := c.Param("id")

	if err := h.messageRepo.MarkRead(messageID, userCtx.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "message_not_found",
				Message: "Message not found",
			})
			return
		}
		log.Printf("ERROR: Failed to mark message %s read: %v", messageID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to mark message as read",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}

// UnreadCount handles GET /api/v1/messages/unread
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	count, err := h.messageRepo.CountUnread(userCtx.UserID)
	if err != nil {
		log.Printf("ERROR: Failed to count unread messages for %s: %v", userCtx.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to count unread messages",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func senderType(scope jwt.Scope) models.ParticipantType {
	if scope == jwt.ScopeAdmin {
		return models.ParticipantAdmin
	}
	return models.ParticipantUser
}
