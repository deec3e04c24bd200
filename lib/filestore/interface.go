package filestore

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IFileStore is the generic interface for per-account file storage.
// Files are namespaced by account ID: two accounts can store files with
// the same name without interfering with each other.
type IFileStore interface {
	// Save stores data under the given file name for an account, replacing
	// any previous content atomically. A reader never observes a partially
	// written file.
	Save(accountID uint64, name string, data []byte) (err error)
	// Load returns the content of a previously saved file.
	Load(accountID uint64, name string) (data []byte, err error)
}

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
	errorCode := ""
	switch e.Code {
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCInvalidName:
		errorCode = "InvalidName"
	case RetCNotFound:
		errorCode = "NotFound"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("FileStoreError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new FileStoreError with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess       RetCode = iota // 0: Command executed successfully.
	RetCInternalError                // 1: Command failed due to an I/O or internal error.
	RetCInvalidName                  // 2: File name is empty or attempts path traversal.
	RetCNotFound                     // 3: No file with this name exists for the account.
)
