package internal

import (
	"context"
	"fmt"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gpt-4-1106-preview"

// DefaultListLimit is the page size for assistant listings
const DefaultListLimit = 10

// AssistantManager creates, lists, retrieves and deletes assistants
type AssistantManager struct {
	client AssistantAPI
	model  string
}

// NewAssistantManager creates an assistant manager. An empty model falls back to DefaultModel.
func NewAssistantManager(client AssistantAPI, model string) *AssistantManager {
	if model == "" {
		model = DefaultModel
	}
	return &AssistantManager{client: client, model: model}
}

// Model returns the model new assistants are created with
func (m *AssistantManager) Model() string {
	return m.model
}

// Create creates a new assistant
func (m *AssistantManager) Create(ctx context.Context, name, instructions string, tools []Tool) (*Assistant, error) {
	if name == "" {
		return nil, &AssistantError{Op: "create", Err: fmt.Errorf("%w: assistant name is empty", ErrInvalidValue)}
	}
	return Call(ctx, CategoryAssistant, "create", func(ctx context.Context) (*Assistant, error) {
		return m.client.CreateAssistant(ctx, Assistant{
			Name:         name,
			Instructions: instructions,
			Tools:        tools,
			Model:        m.model,
		})
	})
}

// List lists assistants. Zero options mean DefaultListLimit, newest first.
func (m *AssistantManager) List(ctx context.Context, opts ListOptions) ([]Assistant, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListLimit
	}
	if opts.Order == "" {
		opts.Order = OrderDesc
	}
	page, err := Call(ctx, CategoryAssistant, "list", func(ctx context.Context) (*Page[Assistant], error) {
		return m.client.ListAssistants(ctx, opts)
	})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Retrieve fetches an assistant by ID
func (m *AssistantManager) Retrieve(ctx context.Context, id string) (*Assistant, error) {
	if id == "" {
		return nil, &AssistantError{Op: "retrieve", Err: fmt.Errorf("%w: assistant ID is empty", ErrInvalidValue)}
	}
	return Call(ctx, CategoryAssistant, "retrieve", func(ctx context.Context) (*Assistant, error) {
		return m.client.GetAssistant(ctx, id)
	})
}

// RetrieveByName pages through the assistant list and returns the newest
// assistant whose name matches exactly.
func (m *AssistantManager) RetrieveByName(ctx context.Context, name string) (*Assistant, error) {
	if name == "" {
		return nil, &AssistantError{Op: "retrieve by name", Err: fmt.Errorf("%w: assistant name is empty", ErrInvalidValue)}
	}

	opts := ListOptions{Limit: 100, Order: OrderDesc}
	for {
		page, err := Call(ctx, CategoryAssistant, "retrieve by name", func(ctx context.Context) (*Page[Assistant], error) {
			return m.client.ListAssistants(ctx, opts)
		})
		if err != nil {
			return nil, err
		}
		for i := range page.Data {
			if page.Data[i].Name == name {
				return &page.Data[i], nil
			}
		}
		if !page.HasMore || page.LastID == "" {
			break
		}
		opts.After = page.LastID
	}

	return nil, &AssistantError{Op: "retrieve by name", Err: fmt.Errorf("%w: no assistant named %q", ErrNotFound, name)}
}

// Delete deletes an assistant by ID
func (m *AssistantManager) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &AssistantError{Op: "delete", Err: fmt.Errorf("%w: assistant ID is empty", ErrInvalidValue)}
	}
	return Do(ctx, CategoryAssistant, "delete", func(ctx context.Context) error {
		return m.client.DeleteAssistant(ctx, id)
	})
}
