package internal

import (
	"context"
	"fmt"
	"sync"
)

// ThreadManager creates and deletes threads and remembers the ones it created.
// The remote API has no thread listing, so List only covers this instance.
type ThreadManager struct {
	client ThreadAPI

	mu      sync.Mutex
	threads map[string]Thread
	order   []string
}

// NewThreadManager creates a thread manager
func NewThreadManager(client ThreadAPI) *ThreadManager {
	return &ThreadManager{
		client:  client,
		threads: make(map[string]Thread),
	}
}

// Create creates a new thread
func (m *ThreadManager) Create(ctx context.Context, metadata map[string]string) (*Thread, error) {
	thread, err := Call(ctx, CategoryThread, "create", func(ctx context.Context) (*Thread, error) {
		return m.client.CreateThread(ctx, metadata)
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if _, ok := m.threads[thread.ID]; !ok {
		m.order = append(m.order, thread.ID)
	}
	m.threads[thread.ID] = *thread
	m.mu.Unlock()

	return thread, nil
}

// Retrieve fetches a thread by ID
func (m *ThreadManager) Retrieve(ctx context.Context, id string) (*Thread, error) {
	if id == "" {
		return nil, &ThreadError{Op: "retrieve", Err: fmt.Errorf("%w: thread ID is empty", ErrInvalidValue)}
	}
	return Call(ctx, CategoryThread, "retrieve", func(ctx context.Context) (*Thread, error) {
		return m.client.GetThread(ctx, id)
	})
}

// List returns threads created through this manager, oldest first
func (m *ThreadManager) List() []Thread {
	m.mu.Lock()
	defer m.mu.Unlock()

	threads := make([]Thread, 0, len(m.order))
	for _, id := range m.order {
		threads = append(threads, m.threads[id])
	}
	return threads
}

// Delete deletes a thread. Its messages and runs are not touched.
func (m *ThreadManager) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &ThreadError{Op: "delete", Err: fmt.Errorf("%w: thread ID is empty", ErrInvalidValue)}
	}
	if err := Do(ctx, CategoryThread, "delete", func(ctx context.Context) error {
		return m.client.DeleteThread(ctx, id)
	}); err != nil {
		return err
	}

	m.mu.Lock()
	if _, ok := m.threads[id]; ok {
		delete(m.threads, id)
		for i, tid := range m.order {
			if tid == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	m.mu.Unlock()
	return nil
}
