package internal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Managers bundles one manager per resource, built once at startup
type Managers struct {
	Assistants *AssistantManager
	Threads    *ThreadManager
	Messages   *MessageManager
	Runs       *RunManager
	Files      *FileManager
}

// NewManagers builds every manager over a single client
func NewManagers(client Client, model string) *Managers {
	return &Managers{
		Assistants: NewAssistantManager(client, model),
		Threads:    NewThreadManager(client),
		Messages:   NewMessageManager(client),
		Runs:       NewRunManager(client),
		Files:      NewFileManager(client),
	}
}

// Task describes one assistant-backed job
type Task struct {
	Name          string
	AssistantName string
	Instructions  string
	Tools         []Tool
	Prompt        string
	RequiresFile  bool
}

// NumericalValidationTask checks that every repo_score in a CSV lies in [0, 1]
var NumericalValidationTask = Task{
	Name:          "numerical-validation",
	AssistantName: "Numerical Validation Assistant",
	Instructions: `You are an expert in numerical data validation. You will be provided a CSV file having 3 columns - repo_score, date and repo_name.
The values of the repo_score column are floating point numbers. Your task is to verify that all the numbers in this repo_score column
meet the following condition:
 - All values must be between 0 and 1 (inclusive) i.e each value must be greater than or equal to 0.0 and less than or equal to 1.0

Return a JSON object with two keys:
1. "valid": true if the dataset meets the criteria, false otherwise
2. "failed_values": a list containing numbers along with repo names that do not satisfy the condition`,
	Tools:        []Tool{ToolCodeInterpreter},
	Prompt:       "Validate the provided CSV file and give out the results",
	RequiresFile: true,
}

// OutlierDetectionTask flags outliers in an inline number sequence
var OutlierDetectionTask = Task{
	Name:          "outlier-detection",
	AssistantName: "Outlier Detection Assistant",
	Instructions: `You are an expert in outlier data validation. You will be provided a dataset with numbers (integer or floating point).
Your task is to identify potential outliers in the dataset or distribution of numbers.
Outliers are values that lie outside the overall pattern in a distribution.
When asked question consisting of the dataset of numbers, identify the outliers and provide it to the user.`,
	Tools:  []Tool{ToolCodeInterpreter},
	Prompt: OutlierPrompt(DefaultOutlierDataset),
}

// DefaultOutlierDataset is the sample sequence used when none is given
var DefaultOutlierDataset = []float64{
	60, 128, 128, 128, 128, 128, 128, 128, 128, 128, 110, 128, 128, 128, 128,
	128, 128, 128, 128, 128, 30, 128, 128, 128, 128, 128, 128, 128, 128, 128,
}

// OutlierPrompt renders the question for a dataset
func OutlierPrompt(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprintf("Identify the outliers in this dataset - [%s]", strings.Join(parts, ", "))
}

// Step names a workflow stage
type Step string

const (
	StepRetrieveAssistant Step = "retrieve assistant"
	StepUploadFile        Step = "upload file"
	StepCreateThread      Step = "create thread"
	StepAddMessage        Step = "add message"
	StepStartRun          Step = "start run"
	StepWaitRun           Step = "wait for run"
	StepReadReply         Step = "read reply"
	StepDeleteThread      Step = "delete thread"
)

// StepError records which workflow stage failed
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// WorkflowInput is the per-invocation input of a workflow
type WorkflowInput struct {
	AssistantID string
	FilePath    string
	// Prompt overrides the task prompt when set
	Prompt string
}

// Report is the outcome of one workflow run
type Report struct {
	Task          string    `json:"task" yaml:"task"`
	CorrelationID string    `json:"correlation_id" yaml:"correlation_id"`
	AssistantID   string    `json:"assistant_id" yaml:"assistant_id"`
	AssistantName string    `json:"assistant_name,omitempty" yaml:"assistant_name,omitempty"`
	FileID        string    `json:"file_id,omitempty" yaml:"file_id,omitempty"`
	ThreadID      string    `json:"thread_id,omitempty" yaml:"thread_id,omitempty"`
	RunID         string    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Status        RunStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Reply         string    `json:"reply,omitempty" yaml:"reply,omitempty"`
	ReplyFound    bool      `json:"reply_found" yaml:"reply_found"`
	ThreadDeleted bool      `json:"thread_deleted" yaml:"thread_deleted"`
	StartedAt     time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt    time.Time `json:"finished_at" yaml:"finished_at"`
}

// Workflow runs a Task end to end
type Workflow struct {
	Task     Task
	Managers *Managers
	Poller   *Poller

	// OnStep is told about every finished stage
	OnStep func(step Step, detail string)

	newID func() string
}

// NewWorkflow creates a workflow that polls with poller
func NewWorkflow(task Task, managers *Managers, poller *Poller) *Workflow {
	return &Workflow{
		Task:     task,
		Managers: managers,
		Poller:   poller,
		newID:    func() string { return uuid.NewString() },
	}
}

func (w *Workflow) step(step Step, format string, args ...interface{}) {
	detail := fmt.Sprintf(format, args...)
	LogDebug("[%s] %s: %s", w.Task.Name, step, detail)
	if w.OnStep != nil {
		w.OnStep(step, detail)
	}
}

// CreateAssistant creates the assistant this task runs against
func (w *Workflow) CreateAssistant(ctx context.Context) (*Assistant, error) {
	return w.Managers.Assistants.Create(ctx, w.Task.AssistantName, w.Task.Instructions, w.Task.Tools)
}

// Run executes the task: retrieve the assistant, optionally upload the file,
// open a thread, post the prompt, run, wait, read the reply and delete the
// thread. The thread is deleted even when a later stage fails.
func (w *Workflow) Run(ctx context.Context, in WorkflowInput) (report *Report, err error) {
	m := w.Managers
	report = &Report{
		Task:          w.Task.Name,
		CorrelationID: w.newID(),
		AssistantID:   in.AssistantID,
		StartedAt:     time.Now().UTC(),
	}
	defer func() { report.FinishedAt = time.Now().UTC() }()

	assistant, err := m.Assistants.Retrieve(ctx, in.AssistantID)
	if err != nil {
		return report, &StepError{Step: StepRetrieveAssistant, Err: err}
	}
	report.AssistantName = assistant.Name
	w.step(StepRetrieveAssistant, "ID: %s, Name: %s", assistant.ID, assistant.Name)

	if w.Task.RequiresFile {
		fileID, err := m.Files.Upload(ctx, in.FilePath)
		if err != nil {
			return report, &StepError{Step: StepUploadFile, Err: err}
		}
		report.FileID = fileID
		w.step(StepUploadFile, "%s -> %s", in.FilePath, fileID)
	}

	thread, err := m.Threads.Create(ctx, map[string]string{
		"task":           w.Task.Name,
		"correlation_id": report.CorrelationID,
	})
	if err != nil {
		return report, &StepError{Step: StepCreateThread, Err: err}
	}
	report.ThreadID = thread.ID
	w.step(StepCreateThread, "%s", thread.ID)

	defer func() {
		cleanupCtx := context.WithoutCancel(ctx)
		if delErr := m.Threads.Delete(cleanupCtx, thread.ID); delErr != nil {
			if err == nil {
				err = &StepError{Step: StepDeleteThread, Err: delErr}
				return
			}
			LogWarn("failed to delete thread %s after error: %v", thread.ID, delErr)
			return
		}
		report.ThreadDeleted = true
		w.step(StepDeleteThread, "%s", thread.ID)
	}()

	prompt := w.Task.Prompt
	if in.Prompt != "" {
		prompt = in.Prompt
	}
	var msg *Message
	if report.FileID != "" {
		msg, err = m.Messages.AddWithFile(ctx, thread.ID, prompt, report.FileID, RoleUser)
	} else {
		msg, err = m.Messages.Add(ctx, thread.ID, prompt, RoleUser)
	}
	if err != nil {
		return report, &StepError{Step: StepAddMessage, Err: err}
	}
	w.step(StepAddMessage, "%s", msg.ID)

	run, err := m.Runs.Start(ctx, thread.ID, assistant.ID, "")
	if err != nil {
		return report, &StepError{Step: StepStartRun, Err: err}
	}
	report.RunID = run.ID
	report.Status = run.Status
	w.step(StepStartRun, "run %s on thread %s", run.ID, thread.ID)

	run, err = w.Poller.Wait(ctx, thread.ID, run.ID)
	if run != nil {
		report.Status = run.Status
	}
	if err != nil {
		return report, &StepError{Step: StepWaitRun, Err: err}
	}
	w.step(StepWaitRun, "%s", run.Status)

	reply, found, err := m.Messages.Process(ctx, thread.ID)
	if err != nil {
		return report, &StepError{Step: StepReadReply, Err: err}
	}
	report.Reply = reply
	report.ReplyFound = found
	if found {
		w.step(StepReadReply, "%d characters", len(reply))
	} else {
		w.step(StepReadReply, "no messages found")
	}

	return report, nil
}
