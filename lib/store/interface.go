package store

import (
	"errors"
	"fmt"

	"github.com/segmentio/ksuid"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IBlobStore is the interface for persisting encoded objects.
// Objects are opaque byte slices addressed by a KSUID that the store assigns on
// creation. All errors returned by implementations are of type *Error.
type IBlobStore interface {
	// Create stores data under a new id and returns the id.
	Create(data []byte) (id ksuid.KSUID, err error)
	// Read returns the data stored under id. The boolean return value indicates whether the id was found.
	Read(id ksuid.KSUID) (data []byte, loaded bool, err error)
	// Update replaces the data stored under id. Updating an unknown id fails with RetCNotFound.
	Update(id ksuid.KSUID, data []byte) (err error)
	// Delete removes the data stored under id. Deleting an unknown id is not an error.
	Delete(id ksuid.KSUID) (err error)
	// List returns all stored ids sorted by KSUID, which orders them by creation second.
	List() (ids []ksuid.KSUID, err error)
	// Close releases the resources of the store. The store must not be used afterwards.
	Close() (err error)
}

// Factory is a function type that creates a new store. It is used to abstract
// the creation of the backend from the code using it.
type Factory func() (IBlobStore, error)

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
}

// Is reports whether target is a *Error with the same code, so callers can
// match with errors.Is(err, &store.Error{Code: store.RetCNotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a new StoreError with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// IsNotFound reports whether err is a store error with code RetCNotFound
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == RetCNotFound
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error.
	RetCInvalidOperation                // 2: Invalid operation (e.g. use after close).
	RetCNotFound                        // 3: The id is not stored.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCInvalidOperation:
		return "InvalidOperation"
	case RetCNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}
