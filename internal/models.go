package internal

import (
	"fmt"
	"time"
)

// Tool is a capability an assistant may use during a run
type Tool string

const (
	ToolCodeInterpreter Tool = "code_interpreter"
	ToolFileSearch      Tool = "file_search"
)

// ParseTool maps a capability name to a Tool. "code execution" is accepted as
// an alias for the code interpreter.
func ParseTool(name string) (Tool, error) {
	switch name {
	case "code_interpreter", "code execution", "code-execution":
		return ToolCodeInterpreter, nil
	case "file_search", "file search", "file-search":
		return ToolFileSearch, nil
	default:
		return "", fmt.Errorf("%w: unknown tool %q (supported: code_interpreter, file_search)", ErrInvalidValue, name)
	}
}

// Assistant is a remotely hosted assistant configuration
type Assistant struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Instructions string    `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Model        string    `json:"model" yaml:"model"`
	Tools        []Tool    `json:"tools,omitempty" yaml:"tools,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// Thread is one remote conversation session
type Thread struct {
	ID        string            `json:"id" yaml:"id"`
	CreatedAt time.Time         `json:"created_at" yaml:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Role of a message author
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message belongs to exactly one thread
type Message struct {
	ID        string    `json:"id" yaml:"id"`
	ThreadID  string    `json:"thread_id" yaml:"thread_id"`
	Role      Role      `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	FileIDs   []string  `json:"file_ids,omitempty" yaml:"file_ids,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewMessage is the payload for appending a message to a thread
type NewMessage struct {
	Role    Role
	Content string
	FileIDs []string
}

// File is an uploaded artifact
type File struct {
	ID        string    `json:"id" yaml:"id"`
	Filename  string    `json:"filename" yaml:"filename"`
	Bytes     int64     `json:"bytes" yaml:"bytes"`
	Purpose   string    `json:"purpose" yaml:"purpose"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// RunStatus is the lifecycle state of a run
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusIncomplete     RunStatus = "incomplete"
	RunStatusExpired        RunStatus = "expired"
)

// IsTerminal reports whether the run can no longer change state
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired, RunStatusIncomplete:
		return true
	}
	return false
}

// ToolCall is a function call the assistant wants the caller to execute
type ToolCall struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Arguments string `json:"arguments" yaml:"arguments"`
}

// ToolOutput is the caller-supplied result for a ToolCall
type ToolOutput struct {
	ToolCallID string `json:"tool_call_id" yaml:"tool_call_id"`
	Output     string `json:"output" yaml:"output"`
}

// Run is one asynchronous execution of an assistant against a thread
type Run struct {
	ID                string     `json:"id" yaml:"id"`
	ThreadID          string     `json:"thread_id" yaml:"thread_id"`
	AssistantID       string     `json:"assistant_id" yaml:"assistant_id"`
	Status            RunStatus  `json:"status" yaml:"status"`
	RequiredToolCalls []ToolCall `json:"required_tool_calls,omitempty" yaml:"required_tool_calls,omitempty"`
	LastError         string     `json:"last_error,omitempty" yaml:"last_error,omitempty"`
}

// ListOrder is the sort direction for list calls
type ListOrder string

const (
	OrderAsc  ListOrder = "asc"
	OrderDesc ListOrder = "desc"
)

// ListOptions controls paging of list calls
type ListOptions struct {
	Limit int
	Order ListOrder
	After string
}

// Page is one page of a list call
type Page[T any] struct {
	Data    []T
	HasMore bool
	LastID  string
}
