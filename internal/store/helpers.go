package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fabianfernandess/FitQuest/internal/models"
)

// marshalReply serializes an embedded reply for a nullable column.
func marshalReply(reply *models.FitnessReply) (interface{}, error) {
	if reply == nil {
		return nil, nil
	}
	data, err := json.Marshal(reply)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize reply: %w", err)
	}
	return string(data), nil
}

// scanMessages scans chat messages from a result set of
// (id, user_id, sender, text, reply_json, time) rows.
func scanMessages(rows *sql.Rows) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		var sender string
		var replyJSON sql.NullString
		if err := rows.Scan(&msg.ID, &msg.UserID, &sender, &msg.Text, &replyJSON, &msg.Time); err != nil {
			return nil, fmt.Errorf("scan chat message failed: %w", err)
		}
		msg.Sender = models.Sender(sender)
		if replyJSON.Valid && replyJSON.String != "" {
			var reply models.FitnessReply
			if err := json.Unmarshal([]byte(replyJSON.String), &reply); err != nil {
				return nil, fmt.Errorf("failed to parse stored reply for message %s: %w", msg.ID, err)
			}
			msg.Reply = &reply
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat messages failed: %w", err)
	}
	return messages, nil
}
