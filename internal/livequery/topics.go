package livequery

import "github.com/google/uuid"

// ConversationsTopic signals changes to any conversation userID takes part in.
func ConversationsTopic(userID uuid.UUID) string {
	return "conversations:" + userID.String()
}

// MessagesTopic signals new messages in one conversation.
func MessagesTopic(conversationID uuid.UUID) string {
	return "messages:" + conversationID.String()
}
