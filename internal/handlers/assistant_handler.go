package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tattoospace/station-booking-backend/internal/services"
)

// AssistantHandler proxies help-assistant chat requests to the external
// text completion endpoint
type AssistantHandler struct {
	assistantService *services.AssistantService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistantService *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// ChatRequest represents an assistant conversation turn
type ChatRequest struct {
	Messages []services.ChatMessage `json:"messages" binding:"required"`
}

// Chat handles POST /api/v1/assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	if len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "At least one message is required",
		})
		return
	}

	completion, err := h.assistantService.Complete(c.Request.Context(), req.Messages)
	if err != nil {
		log.Printf("ERROR: Assistant completion failed: %v", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "assistant_unavailable",
			Message: "The assistant is temporarily unavailable. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"completion": completion})
}
