package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	InvalidConfig        Kind = "invalid_config"
	DirectoryNotFound    Kind = "directory_not_found"
	DirectoryUnreadable  Kind = "directory_unreadable"
	EntryRenameFailed    Kind = "entry_rename_failed"
	TimestampUnavailable Kind = "timestamp_unavailable"
	Internal             Kind = "internal"
)

// ErrNotDirectory is wrapped into DirectoryNotFound when the target exists
// but is not a directory.
var ErrNotDirectory = stderrors.New("not a directory")

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// KindOf returns the kind of the outermost AppError in err's chain, or
// Internal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Fatal reports whether err stops a run as a whole.
func Fatal(err error) bool {
	switch KindOf(err) {
	case EntryRenameFailed, TimestampUnavailable:
		return false
	default:
		return err != nil
	}
}

func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case DirectoryNotFound:
		return fmt.Sprintf("Error: Inbox directory not found at '%s'", appErr.Path)
	case DirectoryUnreadable:
		return fmt.Sprintf("Error: Cannot access directory '%s': %v", appErr.Path, appErr.Err)
	case EntryRenameFailed:
		return fmt.Sprintf("Error renaming file '%s': %v", appErr.Path, appErr.Err)
	case TimestampUnavailable:
		return fmt.Sprintf("Error reading creation time of '%s': %v", appErr.Path, appErr.Err)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}

// Cause returns the error an AppError wraps, or err itself.
func Cause(err error) error {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Err
	}
	return err
}
