package internal

import (
	"context"
	"fmt"
)

// RunManager starts runs, reads their status and submits tool outputs
type RunManager struct {
	client RunAPI
}

// NewRunManager creates a run manager
func NewRunManager(client RunAPI) *RunManager {
	return &RunManager{client: client}
}

// Start runs an assistant against a thread. Empty instructions keep the
// assistant's own.
func (m *RunManager) Start(ctx context.Context, threadID, assistantID, instructions string) (*Run, error) {
	if threadID == "" || assistantID == "" {
		return nil, &RunError{Op: "start", Err: fmt.Errorf("%w: thread ID and assistant ID are required", ErrInvalidValue)}
	}
	return Call(ctx, CategoryRun, "start", func(ctx context.Context) (*Run, error) {
		return m.client.CreateRun(ctx, threadID, assistantID, instructions)
	})
}

// Status fetches the current state of a run
func (m *RunManager) Status(ctx context.Context, threadID, runID string) (*Run, error) {
	if threadID == "" || runID == "" {
		return nil, &RunError{Op: "status", Err: fmt.Errorf("%w: thread ID and run ID are required", ErrInvalidValue)}
	}
	return Call(ctx, CategoryRun, "status", func(ctx context.Context) (*Run, error) {
		return m.client.GetRun(ctx, threadID, runID)
	})
}

// SubmitToolOutputs hands tool results to a run waiting in requires_action
func (m *RunManager) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) error {
	if len(outputs) == 0 {
		return &RunError{Op: "submit tool outputs", Err: fmt.Errorf("%w: no tool outputs", ErrInvalidValue)}
	}
	return Do(ctx, CategoryRun, "submit tool outputs", func(ctx context.Context) error {
		_, err := m.client.SubmitToolOutputs(ctx, threadID, runID, outputs)
		return err
	})
}
