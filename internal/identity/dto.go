package identity

import "github.com/google/uuid"

type ChangeKind int

const (
	SignedIn ChangeKind = iota + 1
	SignedOut
)

func (k ChangeKind) String() string {
	switch k {
	case SignedIn:
		return "signed_in"
	case SignedOut:
		return "signed_out"
	}
	return "unknown"
}

// Identity is the signed-in principal, without credentials.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// Change is emitted on every sign-in and sign-out. Identity is nil on sign-out.
type Change struct {
	Kind     ChangeKind
	Identity *Identity
}
