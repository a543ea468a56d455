package profile

import (
	"github.com/google/uuid"
)

// NOTE: commands travel from session to usecase
type UpdateProfileCommand struct {
	ID       uuid.UUID
	Nickname string
	Username string
	Bio      string
}

type AvatarUpload struct {
	Filename string
	// ContentType as declared by the uploader; sniffed from Data when empty
	ContentType string
	Data        []byte
}
