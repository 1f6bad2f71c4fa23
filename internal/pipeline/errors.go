package pipeline

import (
	"errors"
	"fmt"

	"docview/internal/model"
)

// GenericFailureMessage is shown to the user for every parse or I/O failure.
const GenericFailureMessage = "Failed to read file. Please ensure it is a valid supported format."

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNoReader        = errors.New("no reader registered for content type")
)

// Validation error codes.
const (
	CodeFileTooLarge        = "FILE_TOO_LARGE"
	CodeUnsupportedFileType = "UNSUPPORTED_FILE_TYPE"
)

// ValidationError rejects a file before any bytes are parsed. Message is safe
// to show to the user.
type ValidationError struct {
	Code    string
	Message string
	err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.err }

// ParseError reports that a reader could not decode the container or markup
// of its content type.
type ParseError struct {
	Kind model.ContentType
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a failure of the underlying byte source.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// UserMessage maps a pipeline error to the text shown to the user. Validation
// messages pass through; everything else collapses to GenericFailureMessage.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return GenericFailureMessage
}
