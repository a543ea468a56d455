package model

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	// ID is the identity the profile belongs to
	ID uuid.UUID `bun:",pk,type:uuid"`

	Email string `bun:",notnull"`

	// Nickname = display name shown in chats (can be changed freely)
	Nickname string `bun:",notnull"`

	// Username = unique @handle used for search and new chats
	Username string `bun:",notnull"`

	Bio       string `bun:",notnull,default:''"`
	AvatarURL string `bun:",notnull,default:''"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	LastSeen  time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

const (
	UnknownNickname = "Unknown"
	UnknownUsername = "unknown"
)

// Placeholder stands in for a profile whose record does not exist.
func Placeholder(id uuid.UUID) *Profile {
	return &Profile{ID: id, Nickname: UnknownNickname, Username: UnknownUsername}
}

func (p *Profile) IsPlaceholder() bool {
	return p.Username == UnknownUsername && p.Email == ""
}
