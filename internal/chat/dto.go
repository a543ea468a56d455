package chat

import (
	"chatline/internal/chat/model"
	profileModel "chatline/internal/profile/model"
)

// Entry is one row of the live conversation list.
type Entry struct {
	Conversation model.Conversation
	Peer         *profileModel.Profile
}

// StartResult tells the caller where to navigate after starting a chat.
type StartResult struct {
	Conversation *model.Conversation
	Peer         *profileModel.Profile
	// Created is false when an existing conversation was reused
	Created bool
}
