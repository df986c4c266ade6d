// Package openaiclient implements internal.Client over the hosted assistants API.
package openaiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/iksnae/assistant-runner/internal"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"golang.org/x/time/rate"
)

// Options configures the client
type Options struct {
	APIKey  string
	BaseURL string
	// RequestTimeout bounds each HTTP request; zero keeps the SDK default
	RequestTimeout time.Duration
	// RequestsPerSecond throttles outgoing requests; zero disables throttling
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Client talks to the hosted API
type Client struct {
	api openai.Client
}

var _ internal.Client = (*Client)(nil)

// New creates a client. SDK retries are disabled; retry policy lives in the
// internal package.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, internal.ErrMissingAPIKey
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.RequestTimeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.RequestTimeout))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	if opts.RequestsPerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
		reqOpts = append(reqOpts, option.WithMiddleware(throttle(limiter)))
	}

	return &Client{api: openai.NewClient(reqOpts...)}, nil
}

func throttle(limiter *rate.Limiter) option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		if err := limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
		return next(req)
	}
}

// apiError exposes the HTTP status of an SDK error to internal.Classify
type apiError struct {
	err *openai.Error
}

func (e *apiError) Error() string   { return e.err.Error() }
func (e *apiError) Unwrap() error   { return e.err }
func (e *apiError) StatusCode() int { return e.err.StatusCode }

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	var oe *openai.Error
	if errors.As(err, &oe) {
		return &apiError{err: oe}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return err
	}
	return fmt.Errorf("%w: %w", internal.ErrConnection, err)
}

func unixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func (c *Client) CreateAssistant(ctx context.Context, a internal.Assistant) (*internal.Assistant, error) {
	params := openai.BetaAssistantNewParams{
		Model: openai.ChatModel(a.Model),
		Name:  openai.String(a.Name),
	}
	if a.Instructions != "" {
		params.Instructions = openai.String(a.Instructions)
	}
	for _, tool := range a.Tools {
		switch tool {
		case internal.ToolCodeInterpreter:
			params.Tools = append(params.Tools, openai.AssistantToolUnionParam{OfCodeInterpreter: &openai.CodeInterpreterToolParam{}})
		case internal.ToolFileSearch:
			params.Tools = append(params.Tools, openai.AssistantToolUnionParam{OfFileSearch: &openai.FileSearchToolParam{}})
		}
	}

	created, err := c.api.Beta.Assistants.New(ctx, params)
	if err != nil {
		return nil, wrapErr(err)
	}
	return toAssistant(created), nil
}

func (c *Client) GetAssistant(ctx context.Context, id string) (*internal.Assistant, error) {
	a, err := c.api.Beta.Assistants.Get(ctx, id)
	if err != nil {
		return nil, wrapErr(err)
	}
	return toAssistant(a), nil
}

func (c *Client) ListAssistants(ctx context.Context, opts internal.ListOptions) (*internal.Page[internal.Assistant], error) {
	params := openai.BetaAssistantListParams{
		Order: openai.BetaAssistantListParamsOrderDesc,
	}
	if opts.Order == internal.OrderAsc {
		params.Order = openai.BetaAssistantListParamsOrderAsc
	}
	if opts.Limit > 0 {
		params.Limit = openai.Int(int64(opts.Limit))
	}
	if opts.After != "" {
		params.After = openai.String(opts.After)
	}

	res, err := c.api.Beta.Assistants.List(ctx, params)
	if err != nil {
		return nil, wrapErr(err)
	}

	page := &internal.Page[internal.Assistant]{}
	for i := range res.Data {
		page.Data = append(page.Data, *toAssistant(&res.Data[i]))
	}
	if n := len(res.Data); n > 0 {
		page.LastID = res.Data[n-1].ID
	}
	page.HasMore = res.HasMore
	return page, nil
}

func (c *Client) DeleteAssistant(ctx context.Context, id string) error {
	_, err := c.api.Beta.Assistants.Delete(ctx, id)
	return wrapErr(err)
}

func toAssistant(a *openai.Assistant) *internal.Assistant {
	out := &internal.Assistant{
		ID:           a.ID,
		Name:         a.Name,
		Instructions: a.Instructions,
		Model:        a.Model,
		CreatedAt:    unixTime(a.CreatedAt),
	}
	for _, t := range a.Tools {
		out.Tools = append(out.Tools, internal.Tool(t.Type))
	}
	return out
}

func (c *Client) CreateThread(ctx context.Context, metadata map[string]string) (*internal.Thread, error) {
	params := openai.BetaThreadNewParams{}
	if len(metadata) > 0 {
		params.Metadata = shared.Metadata(metadata)
	}
	t, err := c.api.Beta.Threads.New(ctx, params)
	if err != nil {
		return nil, wrapErr(err)
	}
	return toThread(t), nil
}

func (c *Client) GetThread(ctx context.Context, id string) (*internal.Thread, error) {
	t, err := c.api.Beta.Threads.Get(ctx, id)
	if err != nil {
		return nil, wrapErr(err)
	}
	return toThread(t), nil
}

func (c *Client) DeleteThread(ctx context.Context, id string) error {
	_, err := c.api.Beta.Threads.Delete(ctx, id)
	return wrapErr(err)
}

func toThread(t *openai.Thread) *internal.Thread {
	return &internal.Thread{
		ID:        t.ID,
		CreatedAt: unixTime(t.CreatedAt),
		Metadata:  map[string]string(t.Metadata),
	}
}

func (c *Client) CreateMessage(ctx context.Context, threadID string, msg internal.NewMessage) (*internal.Message, error) {
	params := openai.BetaThreadMessageNewParams{
		Role: openai.BetaThreadMessageNewParamsRole(msg.Role),
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(msg.Content),
		},
	}
	for _, id := range msg.FileIDs {
		params.Attachments = append(params.Attachments, openai.BetaThreadMessageNewParamsAttachment{
			FileID: openai.String(id),
			Tools: []openai.BetaThreadMessageNewParamsAttachmentToolUnion{
				{OfCodeInterpreter: &openai.CodeInterpreterToolParam{}},
			},
		})
	}

	m, err := c.api.Beta.Threads.Messages.New(ctx, threadID, params)
	if err != nil {
		return nil, wrapErr(err)
	}
	return toMessage(m), nil
}

func (c *Client) ListMessages(ctx context.Context, threadID string, opts internal.ListOptions) (*internal.Page[internal.Message], error) {
	params := openai.BetaThreadMessageListParams{
		Order: openai.BetaThreadMessageListParamsOrderDesc,
	}
	if opts.Order == internal.OrderAsc {
		params.Order = openai.BetaThreadMessageListParamsOrderAsc
	}
	if opts.Limit > 0 {
		params.Limit = openai.Int(int64(opts.Limit))
	}
	if opts.After != "" {
		params.After = openai.String(opts.After)
	}

	res, err := c.api.Beta.Threads.Messages.List(ctx, threadID, params)
	if err != nil {
		return nil, wrapErr(err)
	}

	page := &internal.Page[internal.Message]{}
	for i := range res.Data {
		page.Data = append(page.Data, *toMessage(&res.Data[i]))
	}
	if n := len(res.Data); n > 0 {
		page.LastID = res.Data[n-1].ID
	}
	page.HasMore = res.HasMore
	return page, nil
}

// toMessage keeps the first text block, which is where replies land
func toMessage(m *openai.Message) *internal.Message {
	out := &internal.Message{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		Role:      internal.Role(m.Role),
		CreatedAt: unixTime(m.CreatedAt),
	}
	for _, block := range m.Content {
		if block.Type == "text" {
			out.Content = block.Text.Value
			break
		}
	}
	for _, att := range m.Attachments {
		out.FileIDs = append(out.FileIDs, att.FileID)
	}
	return out
}

func (c *Client) CreateRun(ctx context.Context, threadID, assistantID, instructions string) (*internal.Run, error) {
	params := openai.BetaThreadRunNewParams{AssistantID: assistantID}
	if instructions != "" {
		params.Instructions = openai.String(instructions)
	}
	r, err := c.api.Beta.Threads.Runs.New(ctx, threadID, params)
	if err != nil {
		return nil, wrapErr(err)
	}
	return toRun(r), nil
}

func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*internal.Run, error) {
	r, err := c.api.Beta.Threads.Runs.Get(ctx, threadID, runID)
	if err != nil {
		return nil, wrapErr(err)
	}
	return toRun(r), nil
}

func (c *Client) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []internal.ToolOutput) (*internal.Run, error) {
	params := openai.BetaThreadRunSubmitToolOutputsParams{}
	for _, o := range outputs {
		params.ToolOutputs = append(params.ToolOutputs, openai.BetaThreadRunSubmitToolOutputsParamsToolOutput{
			ToolCallID: openai.String(o.ToolCallID),
			Output:     openai.String(o.Output),
		})
	}
	r, err := c.api.Beta.Threads.Runs.SubmitToolOutputs(ctx, threadID, runID, params)
	if err != nil {
		return nil, wrapErr(err)
	}
	return toRun(r), nil
}

func toRun(r *openai.Run) *internal.Run {
	out := &internal.Run{
		ID:          r.ID,
		ThreadID:    r.ThreadID,
		AssistantID: r.AssistantID,
		Status:      internal.RunStatus(r.Status),
		LastError:   r.LastError.Message,
	}
	for _, call := range r.RequiredAction.SubmitToolOutputs.ToolCalls {
		out.RequiredToolCalls = append(out.RequiredToolCalls, internal.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return out
}

func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) (*internal.File, error) {
	f, err := c.api.Files.New(ctx, openai.FileNewParams{
		File:    openai.File(r, filename, "application/octet-stream"),
		Purpose: openai.FilePurposeAssistants,
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return toFile(f), nil
}

func (c *Client) ListFiles(ctx context.Context) ([]internal.File, error) {
	iter := c.api.Files.ListAutoPaging(ctx, openai.FileListParams{})
	var files []internal.File
	for iter.Next() {
		f := iter.Current()
		files = append(files, *toFile(&f))
	}
	if err := iter.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return files, nil
}

func toFile(f *openai.FileObject) *internal.File {
	return &internal.File{
		ID:        f.ID,
		Filename:  f.Filename,
		Bytes:     f.Bytes,
		Purpose:   string(f.Purpose),
		CreatedAt: unixTime(f.CreatedAt),
	}
}
