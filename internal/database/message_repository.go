package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/tattoospace/station-booking-backend/internal/models"
)

// MessageRepository handles database operations for the messages table
type MessageRepository struct {
	db DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `
	id, sender_id, receiver_id, sender_type, receiver_type,
	content, timestamp, read`

// Create inserts a new message
func (r *MessageRepository) Create(message *models.Message) error {
	query := `
		INSERT INTO messages (
			id, sender_id, receiver_id, sender_type, receiver_type, content
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING timestamp
	`

	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		message.ID, message.SenderID, message.ReceiverID,
		message.SenderType, message.ReceiverType, message.Content,
	).Scan(&message.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetForParticipant retrieves all messages sent or received by the
// given participant, oldest first
func (r *MessageRepository) GetForParticipant(participantID string) ([]models.Message, error) {
	query := `SELECT` + messageColumns + `
		FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY timestamp
	`

	rows, err := r.db.Query(query, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var message models.Message
		err := rows.Scan(
			&message.ID, &message.SenderID, &message.ReceiverID,
			&message.SenderType, &message.ReceiverType,
			&message.Content, &message.Timestamp, &message.Read,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

// MarkRead flags a message as read. Only the receiver may mark a
// message; the receiver filter makes a foreign caller indistinguishable
// from a missing message.
func (r *MessageRepository) MarkRead(messageID, receiverID string) error {
	result, err := r.db.Exec(
		`UPDATE messages SET read = TRUE WHERE id = $1 AND receiver_id = $2`,
		messageID, receiverID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// CountUnread returns the number of unread messages addressed to the
// given participant
func (r *MessageRepository) CountUnread(receiverID string) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND read = FALSE`,
		receiverID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
