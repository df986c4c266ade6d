package internal

import (
	"context"
	"fmt"
)

// MessageManager appends and reads thread messages
type MessageManager struct {
	client MessageAPI
}

// NewMessageManager creates a message manager
func NewMessageManager(client MessageAPI) *MessageManager {
	return &MessageManager{client: client}
}

// Add appends a message to a thread. An empty role means RoleUser.
func (m *MessageManager) Add(ctx context.Context, threadID, content string, role Role) (*Message, error) {
	return m.add(ctx, "add", threadID, NewMessage{Role: role, Content: content})
}

// AddWithFile appends a message with one attached file
func (m *MessageManager) AddWithFile(ctx context.Context, threadID, content, fileID string, role Role) (*Message, error) {
	if fileID == "" {
		return nil, &MessageError{Op: "add with file", Err: fmt.Errorf("%w: file ID is empty", ErrInvalidValue)}
	}
	return m.add(ctx, "add with file", threadID, NewMessage{Role: role, Content: content, FileIDs: []string{fileID}})
}

func (m *MessageManager) add(ctx context.Context, op, threadID string, msg NewMessage) (*Message, error) {
	if threadID == "" {
		return nil, &MessageError{Op: op, Err: fmt.Errorf("%w: thread ID is empty", ErrInvalidValue)}
	}
	if msg.Role == "" {
		msg.Role = RoleUser
	}
	return Call(ctx, CategoryMessage, op, func(ctx context.Context) (*Message, error) {
		return m.client.CreateMessage(ctx, threadID, msg)
	})
}

// ListByThread lists a thread's messages, newest first
func (m *MessageManager) ListByThread(ctx context.Context, threadID string) ([]Message, error) {
	if threadID == "" {
		return nil, &MessageError{Op: "list", Err: fmt.Errorf("%w: thread ID is empty", ErrInvalidValue)}
	}
	page, err := Call(ctx, CategoryMessage, "list", func(ctx context.Context) (*Page[Message], error) {
		return m.client.ListMessages(ctx, threadID, ListOptions{Order: OrderDesc})
	})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Process returns the text of the newest message in the thread, which after a
// completed run is the assistant's reply. found is false for an empty thread.
func (m *MessageManager) Process(ctx context.Context, threadID string) (reply string, found bool, err error) {
	messages, err := m.ListByThread(ctx, threadID)
	if err != nil {
		return "", false, err
	}
	if len(messages) == 0 {
		LogDebug("thread %s has no messages", threadID)
		return "", false, nil
	}
	return messages[0].Content, true, nil
}
