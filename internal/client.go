package internal

import (
	"context"
	"io"
)

// AssistantAPI is the remote surface for assistant definitions
type AssistantAPI interface {
	CreateAssistant(ctx context.Context, a Assistant) (*Assistant, error)
	GetAssistant(ctx context.Context, id string) (*Assistant, error)
	ListAssistants(ctx context.Context, opts ListOptions) (*Page[Assistant], error)
	DeleteAssistant(ctx context.Context, id string) error
}

// ThreadAPI is the remote surface for conversation threads
type ThreadAPI interface {
	CreateThread(ctx context.Context, metadata map[string]string) (*Thread, error)
	GetThread(ctx context.Context, id string) (*Thread, error)
	DeleteThread(ctx context.Context, id string) error
}

// MessageAPI is the remote surface for thread messages
type MessageAPI interface {
	CreateMessage(ctx context.Context, threadID string, msg NewMessage) (*Message, error)
	ListMessages(ctx context.Context, threadID string, opts ListOptions) (*Page[Message], error)
}

// RunAPI is the remote surface for runs
type RunAPI interface {
	CreateRun(ctx context.Context, threadID, assistantID, instructions string) (*Run, error)
	GetRun(ctx context.Context, threadID, runID string) (*Run, error)
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) (*Run, error)
}

// FileAPI is the remote surface for uploaded files
type FileAPI interface {
	UploadFile(ctx context.Context, filename string, r io.Reader) (*File, error)
	ListFiles(ctx context.Context) ([]File, error)
}

// Client is the full hosted assistant API
type Client interface {
	AssistantAPI
	ThreadAPI
	MessageAPI
	RunAPI
	FileAPI
}
