package service

import (
	"encoding/hex"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Error kinds. Handlers match these with errors.Is to pick the HTTP
// status; the wrapped message is what the caller sees.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrValidation       = errors.New("invalid input")
	ErrSessionCompleted = errors.New("session completed")
)

// Error pairs a kind with a caller-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func Unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func SessionCompleted(message string) error {
	return &Error{Kind: ErrSessionCompleted, Message: message}
}

// mapNotFound converts the ways a mongo lookup misses (no document, or an
// identifier that is not a valid ObjectID) into a NotFound error with the
// given message. Any other error passes through untouched.
func mapNotFound(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, primitive.ErrInvalidHex) {
		return NotFound(message)
	}
	var hexErr hex.InvalidByteError
	if errors.As(err, &hexErr) {
		return NotFound(message)
	}
	return err
}
