package model

import (
	"time"

	"github.com/google/uuid"
)

// CreatedSummary is the last-message placeholder of a conversation with no messages yet.
const CreatedSummary = "Chat created"

type Conversation struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	// Exactly two user ids. At most one conversation per pair is kept by
	// looking up before creating, not by a constraint.
	Participants []string `bun:",array,notnull"`

	// Denormalized summary of the latest message; advisory only
	LastMessage     string    `bun:",notnull,default:''"`
	LastMessageTime time.Time `bun:",nullzero,default:current_timestamp"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

func (c *Conversation) HasParticipant(id uuid.UUID) bool {
	s := id.String()
	for _, p := range c.Participants {
		if p == s {
			return true
		}
	}
	return false
}

// Peer returns the participant that is not self. ok is false when the record
// holds no valid other participant.
func (c *Conversation) Peer(self uuid.UUID) (peer uuid.UUID, ok bool) {
	s := self.String()
	for _, p := range c.Participants {
		if p == s || p == "" {
			continue
		}
		id, err := uuid.Parse(p)
		if err != nil || id == uuid.Nil {
			continue
		}
		return id, true
	}
	return uuid.Nil, false
}
