package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/tattoospace/station-booking-backend/internal/config"
)

// ChatMessage is one turn of an assistant conversation
type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// completionRequest is the payload sent to the external endpoint
type completionRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// completionResponse is the payload returned by the external endpoint
type completionResponse struct {
	Completion string `json:"completion"`
}

// AssistantService proxies help-chat transcripts to an external
// text-completion endpoint
type AssistantService struct {
	completionURL string
	client        *http.Client
	logger        *logrus.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(cfg config.AssistantConfig, logger *logrus.Logger) *AssistantService {
	return &AssistantService{
		completionURL: cfg.CompletionURL,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

// Complete sends the transcript to the completion endpoint and returns
// the assistant's reply text
func (s *AssistantService) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("messages cannot be empty")
	}

	body, err := json.Marshal(completionRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.completionURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("Completion request failed")
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
		}).Error("Completion endpoint returned an error")
		return "", fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	var completion completionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	return completion.Completion, nil
}
