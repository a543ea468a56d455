package errors

var (
	// Domain errors, returned by usecases
	ErrDuplicateUsername = AlreadyExists("this username is already taken")
	ErrProfileNotFound   = NotFound("user not found")
	ErrInvalidUsername   = InvalidArg("username may contain only latin letters, digits and underscores and must be at least 3 characters")
	ErrNicknameRequired  = InvalidArg("nickname is required")
	ErrUsernameRequired  = InvalidArg("username is required")
	ErrInvalidQuery      = InvalidArg("use only latin letters, digits and _ to search")
	ErrInvalidAvatar     = InvalidArg("avatar must be an image no larger than the size limit")
	ErrSelfConversation  = InvalidArg("you cannot start a chat with yourself")
	ErrNotParticipant    = InvalidArg("sender is not a participant of this conversation")
	ErrConversationGone  = NotFound("conversation not found")

	ErrEmailRequired      = InvalidArg("email and password are required")
	ErrInvalidEmail       = InvalidArg("email address is invalid")
	ErrPasswordTooShort   = InvalidArg("password must be at least 6 characters")
	ErrPasswordMismatch   = InvalidArg("passwords do not match")
	ErrEmailTaken         = AlreadyExists("an account with this email already exists")
	ErrInvalidCredentials = Unauthorized("invalid email or password")
	ErrNotSignedIn        = Unauthorized("not signed in")
)

func ErrRegistrationFailed(cause error) error {
	return Wrap(CodeInternal, "registration failed", cause)
}

func ErrLoginFailed(cause error) error {
	return Wrap(CodeInternal, "sign-in failed, please try again", cause)
}
