package internal

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidValue marks caller input rejected before any remote call
	ErrInvalidValue = errors.New("invalid value")
	// ErrMissingAPIKey is returned when no API credential is configured
	ErrMissingAPIKey = errors.New("API key is not set (export API_KEY)")
	// ErrNotFound marks a lookup that matched nothing
	ErrNotFound = errors.New("not found")
	// ErrConnection marks a request that failed before the API answered
	ErrConnection = errors.New("connection failure")
)

// AssistantError represents errors handling assistants
type AssistantError struct {
	Op  string
	Err error
}

func (e *AssistantError) Error() string {
	return fmt.Sprintf("assistant error: %s: %v", e.Op, e.Err)
}

func (e *AssistantError) Unwrap() error {
	return e.Err
}

// FileError represents errors handling files
type FileError struct {
	Op  string
	Err error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s: %v", e.Op, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// MessageError represents errors handling thread messages
type MessageError struct {
	Op  string
	Err error
}

func (e *MessageError) Error() string {
	return fmt.Sprintf("message error: %s: %v", e.Op, e.Err)
}

func (e *MessageError) Unwrap() error {
	return e.Err
}

// RunError represents errors handling runs
type RunError struct {
	Op  string
	Err error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run error: %s: %v", e.Op, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// ThreadError represents errors handling threads
type ThreadError struct {
	Op  string
	Err error
}

func (e *ThreadError) Error() string {
	return fmt.Sprintf("thread error: %s: %v", e.Op, e.Err)
}

func (e *ThreadError) Unwrap() error {
	return e.Err
}

// RunTimeoutError is returned when a run does not finish within the poll deadline
type RunTimeoutError struct {
	RunID      string
	LastStatus RunStatus
	Waited     time.Duration
}

func (e *RunTimeoutError) Error() string {
	return fmt.Sprintf("run %s did not complete within %s (last status: %s)", e.RunID, e.Waited, e.LastStatus)
}

// Category is the resource family an error belongs to
type Category int

const (
	CategoryAssistant Category = iota
	CategoryFile
	CategoryMessage
	CategoryRun
	CategoryThread
)

func (c Category) String() string {
	switch c {
	case CategoryAssistant:
		return "assistant"
	case CategoryFile:
		return "file"
	case CategoryMessage:
		return "message"
	case CategoryRun:
		return "run"
	case CategoryThread:
		return "thread"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// NewCategoryError wraps err in the domain error type for category
func NewCategoryError(category Category, op string, err error) error {
	switch category {
	case CategoryAssistant:
		return &AssistantError{Op: op, Err: err}
	case CategoryFile:
		return &FileError{Op: op, Err: err}
	case CategoryMessage:
		return &MessageError{Op: op, Err: err}
	case CategoryRun:
		return &RunError{Op: op, Err: err}
	case CategoryThread:
		return &ThreadError{Op: op, Err: err}
	default:
		return err
	}
}

// CategoryOf returns the category of a domain error anywhere in err's chain
func CategoryOf(err error) (Category, bool) {
	var (
		ae *AssistantError
		fe *FileError
		me *MessageError
		re *RunError
		te *ThreadError
	)
	switch {
	case errors.As(err, &ae):
		return CategoryAssistant, true
	case errors.As(err, &fe):
		return CategoryFile, true
	case errors.As(err, &me):
		return CategoryMessage, true
	case errors.As(err, &re):
		return CategoryRun, true
	case errors.As(err, &te):
		return CategoryThread, true
	}
	return 0, false
}
