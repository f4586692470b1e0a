package services

import "errors"

// Shared sentinel errors used across services and the HTTP error mapping.
var (
	// Mutations from anonymous visitors; the handler layer answers with a
	// redirect to the sign-in surface.
	ErrAuthenticationRequired = errors.New("sign in to continue")

	// Friend requests.
	ErrSelfFriendRequest      = errors.New("cannot send a friend request to yourself")
	ErrRequestAlreadyPending  = errors.New("a request between these players is already pending")
	ErrAlreadyFriends         = errors.New("you are already friends with this player")
	ErrInvalidRequestResponse = errors.New("response must be accepted or declined")

	// Registration.
	ErrRegistrationUnavailable = errors.New("registration not available for this event")
	ErrUploadFailed            = errors.New("upload failed")

	ErrEventNotFound = errors.New("event not found")
)

// ValidationError blocks a registration submission. Message names the first
// failing field and is shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
