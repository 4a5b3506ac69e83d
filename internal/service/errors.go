// Package service holds the registration, authentication, session and
// directory workflows. Every workflow returns *Error for expected failures so
// the HTTP layer can map Kind to a status code.
package service

import "fmt"

// Kind classifies workflow failures.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicateEmail
	KindInvalidFileType
	KindPersistence
	KindUserNotFound
	KindInvalidCredentials
	KindInvalidToken
	KindExpiredToken
	KindMissingToken
)

var kindNames = map[Kind]string{
	KindInternal:           "internal",
	KindValidation:         "validation",
	KindDuplicateEmail:     "duplicate_email",
	KindInvalidFileType:    "invalid_file_type",
	KindPersistence:        "persistence",
	KindUserNotFound:       "user_not_found",
	KindInvalidCredentials: "invalid_credentials",
	KindInvalidToken:       "invalid_token",
	KindExpiredToken:       "expired_token",
	KindMissingToken:       "missing_token",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified workflow failure. Message is safe to show to clients;
// Err, when set, is the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cause returns the underlying error text, or "" when there is none.
func (e *Error) Cause() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// User-facing messages.
const (
	MsgInvalidCategory      = "Invalid category"
	MsgDoctorSpecialization = "Doctor must provide a specialization"
	MsgDoctorOrganization   = "Doctor must provide an organization name"
	MsgMedicalOrganizations = "Medical users must add at least one organization"
	MsgDuplicateEmail       = "Email already registered"
	MsgSignupFailed         = "Signup unsuccessful, please retry"
	MsgSignupError          = "Error in signup"
	MsgUserNotFound         = "User not found"
	MsgInvalidCredentials   = "Invalid credentials"
	MsgLoginError           = "Error in login"
	MsgLoggedOut            = "You have been logged out"
	MsgNotLoggedIn          = "User not logged in"
	MsgServerError          = "Server error"
)
