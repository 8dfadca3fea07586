package account

import "errors"

// Stable errors for callers; match with errors.Is.
var (
	// ErrAuth is the parent of every bad-credentials failure.
	ErrAuth               = errors.New("authentication failed")
	ErrUserNotFound       = &authError{msg: "user not found"}
	ErrInvalidCredentials = &authError{msg: "invalid credentials"}

	ErrInvalidPassword = errors.New("password is empty or longer than 72 bytes")
	ErrHashing         = errors.New("password hashing failed")
	ErrPersistence     = errors.New("store rejected the operation")

	ErrTokenMissing = errors.New("token not provided")
	ErrTokenInvalid = errors.New("invalid token")
)

type authError struct {
	msg string
}

func (e *authError) Error() string { return e.msg }

func (e *authError) Is(target error) bool { return target == ErrAuth }
