package internal

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// FakeClient is an in-memory Client for tests. Errors keyed by method name
// are returned instead of performing the call.
type FakeClient struct {
	mu sync.Mutex

	Errors map[string]error
	Calls  map[string]int

	// RunScript is the sequence of statuses GetRun walks through; the last
	// entry repeats. Empty means a run completes on the first poll.
	RunScript []RunStatus
	// Reply is appended as an assistant message when a run completes
	Reply string

	assistants map[string]Assistant
	order      []string
	threads    map[string]Thread
	messages   map[string][]Message
	runs       map[string]*Run
	runPolls   map[string]int
	files      []File
	Submitted  map[string][]ToolOutput

	seq int
}

// NewFakeClient creates an empty FakeClient
func NewFakeClient() *FakeClient {
	return &FakeClient{
		Errors:     make(map[string]error),
		Calls:      make(map[string]int),
		assistants: make(map[string]Assistant),
		threads:    make(map[string]Thread),
		messages:   make(map[string][]Message),
		runs:       make(map[string]*Run),
		runPolls:   make(map[string]int),
		Submitted:  make(map[string][]ToolOutput),
	}
}

func (f *FakeClient) enter(method string) error {
	f.Calls[method]++
	return f.Errors[method]
}

func (f *FakeClient) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s_%03d", prefix, f.seq)
}

// CallCount returns how many times method was called
func (f *FakeClient) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[method]
}

// SeedMessages stores messages for a thread, oldest first
func (f *FakeClient) SeedMessages(threadID string, messages ...Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[threadID] = append(f.messages[threadID], messages...)
}

// HasThread reports whether a thread currently exists
func (f *FakeClient) HasThread(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.threads[id]
	return ok
}

func (f *FakeClient) CreateAssistant(ctx context.Context, a Assistant) (*Assistant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateAssistant"); err != nil {
		return nil, err
	}
	a.ID = f.nextID("asst")
	a.CreatedAt = time.Unix(int64(f.seq), 0).UTC()
	f.assistants[a.ID] = a
	f.order = append(f.order, a.ID)
	return &a, nil
}

func (f *FakeClient) GetAssistant(ctx context.Context, id string) (*Assistant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetAssistant"); err != nil {
		return nil, err
	}
	a, ok := f.assistants[id]
	if !ok {
		return nil, &FakeStatusError{Code: 404, Message: "No assistant found with id '" + id + "'."}
	}
	return &a, nil
}

func (f *FakeClient) ListAssistants(ctx context.Context, opts ListOptions) (*Page[Assistant], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListAssistants"); err != nil {
		return nil, err
	}

	ids := append([]string(nil), f.order...)
	if opts.Order != OrderAsc {
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}
	if opts.After != "" {
		for i, id := range ids {
			if id == opts.After {
				ids = ids[i+1:]
				break
			}
		}
	}

	page := &Page[Assistant]{}
	for _, id := range ids {
		if opts.Limit > 0 && len(page.Data) == opts.Limit {
			page.HasMore = true
			break
		}
		page.Data = append(page.Data, f.assistants[id])
		page.LastID = id
	}
	return page, nil
}

func (f *FakeClient) DeleteAssistant(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteAssistant"); err != nil {
		return err
	}
	if _, ok := f.assistants[id]; !ok {
		return &FakeStatusError{Code: 404, Message: "No assistant found with id '" + id + "'."}
	}
	delete(f.assistants, id)
	for i, aid := range f.order {
		if aid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *FakeClient) CreateThread(ctx context.Context, metadata map[string]string) (*Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateThread"); err != nil {
		return nil, err
	}
	t := Thread{ID: f.nextID("thread"), CreatedAt: time.Now().UTC(), Metadata: metadata}
	f.threads[t.ID] = t
	return &t, nil
}

func (f *FakeClient) GetThread(ctx context.Context, id string) (*Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetThread"); err != nil {
		return nil, err
	}
	t, ok := f.threads[id]
	if !ok {
		return nil, &FakeStatusError{Code: 404, Message: "No thread found with id '" + id + "'."}
	}
	return &t, nil
}

func (f *FakeClient) DeleteThread(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteThread"); err != nil {
		return err
	}
	delete(f.threads, id)
	return nil
}

func (f *FakeClient) CreateMessage(ctx context.Context, threadID string, msg NewMessage) (*Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateMessage"); err != nil {
		return nil, err
	}
	m := Message{
		ID:        f.nextID("msg"),
		ThreadID:  threadID,
		Role:      msg.Role,
		Content:   msg.Content,
		FileIDs:   msg.FileIDs,
		CreatedAt: time.Now().UTC(),
	}
	f.messages[threadID] = append(f.messages[threadID], m)
	return &m, nil
}

func (f *FakeClient) ListMessages(ctx context.Context, threadID string, opts ListOptions) (*Page[Message], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListMessages"); err != nil {
		return nil, err
	}
	stored := f.messages[threadID]
	page := &Page[Message]{}
	for i := len(stored) - 1; i >= 0; i-- {
		page.Data = append(page.Data, stored[i])
	}
	return page, nil
}

func (f *FakeClient) CreateRun(ctx context.Context, threadID, assistantID, instructions string) (*Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateRun"); err != nil {
		return nil, err
	}
	r := &Run{ID: f.nextID("run"), ThreadID: threadID, AssistantID: assistantID, Status: RunStatusQueued}
	f.runs[r.ID] = r
	copied := *r
	return &copied, nil
}

func (f *FakeClient) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetRun"); err != nil {
		return nil, err
	}
	r, ok := f.runs[runID]
	if !ok {
		r = &Run{ID: runID, ThreadID: threadID}
		f.runs[runID] = r
	}

	status := RunStatusCompleted
	if n := len(f.RunScript); n > 0 {
		i := f.runPolls[runID]
		if i >= n {
			i = n - 1
		}
		status = f.RunScript[i]
	}
	f.runPolls[runID]++

	if status == RunStatusCompleted && r.Status != RunStatusCompleted && f.Reply != "" {
		f.messages[threadID] = append(f.messages[threadID], Message{
			ID:       f.nextID("msg"),
			ThreadID: threadID,
			Role:     RoleAssistant,
			Content:  f.Reply,
		})
	}
	r.Status = status
	if status == RunStatusRequiresAction {
		r.RequiredToolCalls = []ToolCall{{ID: "call_1", Name: "lookup", Arguments: "{}"}}
	}
	copied := *r
	return &copied, nil
}

func (f *FakeClient) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) (*Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("SubmitToolOutputs"); err != nil {
		return nil, err
	}
	f.Submitted[runID] = append(f.Submitted[runID], outputs...)
	r, ok := f.runs[runID]
	if !ok {
		return nil, &FakeStatusError{Code: 404, Message: "No run found with id '" + runID + "'."}
	}
	r.Status = RunStatusQueued
	copied := *r
	return &copied, nil
}

func (f *FakeClient) UploadFile(ctx context.Context, filename string, r io.Reader) (*File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UploadFile"); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	file := File{ID: f.nextID("file"), Filename: filename, Bytes: int64(len(data)), Purpose: "assistants"}
	f.files = append(f.files, file)
	return &file, nil
}

func (f *FakeClient) ListFiles(ctx context.Context) ([]File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListFiles"); err != nil {
		return nil, err
	}
	return append([]File(nil), f.files...), nil
}

// FakeStatusError is an API error with an HTTP status code
type FakeStatusError struct {
	Code    int
	Message string
}

func (e *FakeStatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func (e *FakeStatusError) StatusCode() int {
	return e.Code
}

// CreateTestReport creates a completed report with a reply for testing
func CreateTestReport(task string) *Report {
	started := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &Report{
		Task:          task,
		CorrelationID: "4f1c7f7e-2f8a-4c55-9b3f-0d2b8f3c9a10",
		AssistantID:   "asst_001",
		AssistantName: "Numerical Validation Assistant",
		FileID:        "file_002",
		ThreadID:      "thread_003",
		RunID:         "run_005",
		Status:        RunStatusCompleted,
		Reply:         `{"valid": true, "failed_values": []}`,
		ReplyFound:    true,
		ThreadDeleted: true,
		StartedAt:     started,
		FinishedAt:    started.Add(20 * time.Second),
	}
}

// CreateTestReportWithoutReply creates a report for a thread that had no messages
func CreateTestReportWithoutReply(task string) *Report {
	r := CreateTestReport(task)
	r.Reply = ""
	r.ReplyFound = false
	return r
}
