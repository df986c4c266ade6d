package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/assistant-runner/internal"
	"github.com/iksnae/assistant-runner/testutil"
)

func createFakeAssistant(t *testing.T, fake *internal.FakeClient, task internal.Task) string {
	t.Helper()
	a, err := fake.CreateAssistant(context.Background(), internal.Assistant{Name: task.AssistantName, Instructions: task.Instructions})
	if err != nil {
		t.Fatalf("CreateAssistant() error = %v", err)
	}
	return a.ID
}

func TestValidateCommand(t *testing.T) {
	fake := setupFakeClient(t)
	fake.RunScript = []internal.RunStatus{internal.RunStatusQueued, internal.RunStatusCompleted}
	fake.Reply = "all values are valid"
	id := createFakeAssistant(t, fake, internal.NumericalValidationTask)

	out, err := executeCommand(t, "validate",
		"--assistant-id", id,
		"--file", testutil.WriteScoresCSV(t),
		"--poll-interval", "1ms",
		"--format", "json",
	)
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}

	var report internal.Report
	testutil.JSONUnmarshal(t, []byte(out), &report)
	if report.Task != internal.NumericalValidationTask.Name || report.Reply != fake.Reply {
		t.Errorf("report = %+v", report)
	}
	if report.FileID == "" || !report.ThreadDeleted {
		t.Errorf("report = %+v, want uploaded file and deleted thread", report)
	}
	if fake.HasThread(report.ThreadID) {
		t.Error("thread left behind")
	}
}

func TestValidateCommand_ConfigDefaults(t *testing.T) {
	fake := setupFakeClient(t)
	fake.Reply = "ok"
	id := createFakeAssistant(t, fake, internal.NumericalValidationTask)
	t.Setenv("VALIDATION_ASSISTANT_ID", id)

	// The default dataset path is relative to the working directory
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	testutil.WriteFile(t, wd, internal.DefaultDatasetPath, testutil.SampleScoresCSV)

	out, err := executeCommand(t, "validate", "--poll-interval", "1ms")
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out, "Assistant: ok") {
		t.Errorf("output = %q", out)
	}
	if fake.CallCount("UploadFile") != 1 {
		t.Errorf("UploadFile calls = %d, want 1", fake.CallCount("UploadFile"))
	}
}

func TestValidateCommand_MissingDataset(t *testing.T) {
	fake := setupFakeClient(t)
	id := createFakeAssistant(t, fake, internal.NumericalValidationTask)

	_, err := executeCommand(t, "validate", "--assistant-id", id, "--file", "nope.csv", "--poll-interval", "1ms")
	if err == nil {
		t.Fatal("validate with a missing dataset succeeded")
	}
	if !strings.Contains(err.Error(), string(internal.StepUploadFile)) {
		t.Errorf("error = %v, want it to name the upload step", err)
	}
}

func TestOutliersCommand(t *testing.T) {
	fake := setupFakeClient(t)
	fake.Reply = "The outlier is 100."
	id := createFakeAssistant(t, fake, internal.OutlierDetectionTask)
	outPath := filepath.Join(t.TempDir(), "report.md")

	if _, err := executeCommand(t, "outliers",
		"--assistant-id", id,
		"--values", "1,2,100",
		"--poll-interval", "1ms",
		"--format", "md",
		"--output", outPath,
	); err != nil {
		t.Fatalf("outliers error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	for _, want := range []string{"# outlier-detection", "The outlier is 100."} {
		if !strings.Contains(string(data), want) {
			t.Errorf("report missing %q:\n%s", want, data)
		}
	}
	if fake.CallCount("UploadFile") != 0 {
		t.Error("outliers uploaded a file")
	}
}

func TestOutliersCommand_NoAssistant(t *testing.T) {
	fake := setupFakeClient(t)

	_, err := executeCommand(t, "outliers", "--poll-interval", "1ms")
	if err == nil {
		t.Fatal("outliers without an assistant succeeded")
	}
	if !strings.Contains(err.Error(), string(internal.StepRetrieveAssistant)) {
		t.Errorf("error = %v, want it to name the retrieve step", err)
	}
	if fake.CallCount("GetAssistant") != 0 {
		t.Error("GetAssistant called with an empty ID")
	}
}

func TestWorkflowCommand_WarnsOnLeftoverThread(t *testing.T) {
	fake := setupFakeClient(t)
	id := createFakeAssistant(t, fake, internal.OutlierDetectionTask)
	fake.Errors["CreateMessage"] = errors.New("message rejected")
	fake.Errors["DeleteThread"] = errors.New("delete rejected")

	out, err := executeCommand(t, "outliers", "--assistant-id", id, "--poll-interval", "1ms")
	if err == nil {
		t.Fatal("outliers succeeded despite failing message")
	}
	if !strings.Contains(err.Error(), "message rejected") {
		t.Errorf("error = %v, want the original failure", err)
	}
	if !strings.Contains(out, "WARNING: thread ") || !strings.Contains(out, "was not deleted") {
		t.Errorf("output = %q, want a leftover-thread warning", out)
	}
}

func TestWorkflowCommand_JSONLAppends(t *testing.T) {
	fake := setupFakeClient(t)
	fake.Reply = "done"
	id := createFakeAssistant(t, fake, internal.OutlierDetectionTask)

	out, err := executeCommand(t, "outliers", "--assistant-id", id, "--poll-interval", "1ms", "-f", "jsonl")
	if err != nil {
		t.Fatalf("outliers error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Fatalf("jsonl output has %d lines, want 1:\n%s", len(lines), out)
	}
	var report map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &report); err != nil {
		t.Fatalf("invalid jsonl line: %v", err)
	}
	if report["reply"] != "done" {
		t.Errorf("reply = %v", report["reply"])
	}
}

func TestWorkflowCommand_BadFormat(t *testing.T) {
	fake := setupFakeClient(t)
	id := createFakeAssistant(t, fake, internal.OutlierDetectionTask)

	if _, err := executeCommand(t, "outliers", "--assistant-id", id, "--format", "xml"); err == nil {
		t.Error("unsupported format accepted")
	}
	if fake.CallCount("CreateThread") != 0 {
		t.Error("workflow ran despite unsupported format")
	}
}

func TestTaskByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"validation", internal.NumericalValidationTask.Name, false},
		{"numerical-validation", internal.NumericalValidationTask.Name, false},
		{"outliers", internal.OutlierDetectionTask.Name, false},
		{"outlier-detection", internal.OutlierDetectionTask.Name, false},
		{"poetry", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := taskByName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("taskByName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.Name != tt.want {
				t.Errorf("taskByName() = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestHealthcheckCommand(t *testing.T) {
	fake := setupFakeClient(t)
	id := createFakeAssistant(t, fake, internal.OutlierDetectionTask)
	t.Setenv("OUTLIER_ASSISTANT_ID", id)

	out, err := executeCommand(t, "healthcheck", "--details")
	if err != nil {
		t.Fatalf("healthcheck error = %v\n%s", err, out)
	}
	for _, want := range []string{"API reachable", internal.OutlierDetectionTask.AssistantName, "Health check passed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHealthcheckCommand_MissingAssistant(t *testing.T) {
	setupFakeClient(t)
	t.Setenv("VALIDATION_ASSISTANT_ID", "asst_gone")

	out, err := executeCommand(t, "healthcheck")
	if err == nil {
		t.Fatalf("healthcheck succeeded with a missing assistant:\n%s", out)
	}
	if !strings.Contains(out, "asst_gone") {
		t.Errorf("output = %q", out)
	}
}

func TestHealthcheckCommand_MissingKey(t *testing.T) {
	setupFakeClient(t)
	t.Setenv("API_KEY", "")

	if _, err := executeCommand(t, "healthcheck"); err == nil {
		t.Error("healthcheck succeeded without an API key")
	}
}
