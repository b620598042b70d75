package models

import (
	"fmt"
	"time"
)

// ParticipantType tags a message endpoint as a user or an admin
type ParticipantType string

const (
	ParticipantUser  ParticipantType = "user"
	ParticipantAdmin ParticipantType = "admin"
)

// Message represents one support message between a user and an admin.
// Messages are append-only; the read flag is the only mutable field.
type Message struct {
	ID           string          `db:"id" json:"id"`
	SenderID     string          `db:"sender_id" json:"sender_id"`
	ReceiverID   string          `db:"receiver_id" json:"receiver_id"`
	SenderType   ParticipantType `db:"sender_type" json:"sender_type"`
	ReceiverType ParticipantType `db:"receiver_type" json:"receiver_type"`
	Content      string          `db:"content" json:"content"`
	Timestamp    time.Time       `db:"timestamp" json:"timestamp"`
	Read         bool            `db:"read" json:"read"`
}

// SendMessageRequest represents a request to send a message
type SendMessageRequest struct {
	ReceiverID   string          `json:"receiver_id" binding:"required"`
	ReceiverType ParticipantType `json:"receiver_type" binding:"required"`
	Content      string          `json:"content" binding:"required"`
}

// Validate validates the send message request
func (r *SendMessageRequest) Validate() error {
	if r.ReceiverType != ParticipantUser && r.ReceiverType != ParticipantAdmin {
		return fmt.Errorf("receiver_type must be 'user' or 'admin'")
	}
	if r.Content == "" {
		return fmt.Errorf("content cannot be empty")
	}
	return nil
}
