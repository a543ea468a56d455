package model

import (
	"time"

	"github.com/google/uuid"
)

// Account is an email/password identity. Its id is shared with the user's profile.
type Account struct {
	ID           uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`
	Email        string    `bun:",unique,notnull"`
	PasswordHash []byte    `bun:",notnull"`
	CreatedAt    time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
