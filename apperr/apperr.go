// File: /apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so transport code can pick a status code
// without parsing messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindParentNotFound
	KindNotAuthor
	KindNotAllowed
	KindUnauthenticated
	KindAlreadyLoggedIn
	KindDuplicateUsername
	KindInvalidCredentials
	KindInvalidState
	KindInvalid
)

// Error carries the failure kind alongside a human-readable message that
// names the identifiers involved.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing record, e.g. "post 42 not found".
func NotFound(resource, id string) *Error {
	return New(KindNotFound, "%s %s not found", resource, id)
}

// ParentNotFound reports an item reference that matched no collection.
func ParentNotFound(id string) *Error {
	return New(KindParentNotFound, "item %s does not exist", id)
}

// NotAuthor reports an ownership check failure. Both identifiers are kept
// in the message for diagnostics.
func NotAuthor(userID, itemID string) *Error {
	return New(KindNotAuthor, "user %s is not the author of %s", userID, itemID)
}

func NotAllowed(userID, itemID string) *Error {
	return New(KindNotAllowed, "user %s may not modify %s", userID, itemID)
}

func Unauthenticated() *Error {
	return New(KindUnauthenticated, "not logged in")
}

func AlreadyLoggedIn() *Error {
	return New(KindAlreadyLoggedIn, "already logged in, must log out first")
}

func DuplicateUsername(username string) *Error {
	return New(KindDuplicateUsername, "username %s is already taken", username)
}

// InvalidCredentials deliberately does not say which input was wrong.
func InvalidCredentials() *Error {
	return New(KindInvalidCredentials, "invalid username or password")
}

func InvalidState(format string, args ...interface{}) *Error {
	return New(KindInvalidState, format, args...)
}

func Invalid(format string, args ...interface{}) *Error {
	return New(KindInvalid, format, args...)
}

// KindOf extracts the kind from err, unwrapping as needed. Errors that did
// not originate here report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps a failure to the status the API answers with.
// Unrecognized errors are treated as internal.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound, KindParentNotFound:
		return http.StatusNotFound
	case KindNotAuthor, KindNotAllowed:
		return http.StatusForbidden
	case KindUnauthenticated, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindAlreadyLoggedIn, KindDuplicateUsername, KindInvalidState:
		return http.StatusConflict
	case KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
