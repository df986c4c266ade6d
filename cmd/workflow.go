package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/iksnae/assistant-runner/internal"
	"github.com/iksnae/assistant-runner/internal/export"
	"github.com/spf13/cobra"
)

var (
	workflowAssistantID string
	workflowFormat      string
	workflowOutput      string
)

func taskByName(name string) (internal.Task, error) {
	switch name {
	case "validation", "validate", internal.NumericalValidationTask.Name:
		return internal.NumericalValidationTask, nil
	case "outliers", "outlier", internal.OutlierDetectionTask.Name:
		return internal.OutlierDetectionTask, nil
	default:
		return internal.Task{}, fmt.Errorf("unknown task %q (supported: validation, outliers)", name)
	}
}

// runWorkflow executes task and exports the report to stdout or --output
func runWorkflow(cmd *cobra.Command, a *app, task internal.Task, in internal.WorkflowInput) error {
	exporter, err := export.NewExporter(workflowFormat)
	if err != nil {
		return err
	}

	wf := internal.NewWorkflow(task, a.managers, a.newPoller(cmd))
	wf.OnStep = func(step internal.Step, detail string) {
		internal.PrintSuccess(fmt.Sprintf("%s: %s", step, detail))
	}

	report, err := wf.Run(cmd.Context(), in)
	if err != nil {
		if report != nil && report.ThreadID != "" && !report.ThreadDeleted {
			internal.PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("thread %s was not deleted", report.ThreadID))
		}
		return fmt.Errorf("%s failed: %w", task.Name, err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if workflowOutput != "" {
		f, err := os.Create(workflowOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	if err := exporter.Export(report, w); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}
	if workflowOutput != "" {
		internal.PrintSuccess(fmt.Sprintf("Wrote %s report to %s", exporter.Extension(), workflowOutput))
	}
	return nil
}

func addWorkflowFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&workflowAssistantID, "assistant-id", "", "Pre-created assistant to run (overrides config)")
	cmd.Flags().StringVarP(&workflowFormat, "format", "f", "text", "Report format (text, md, json, jsonl, yaml)")
	cmd.Flags().StringVarP(&workflowOutput, "output", "o", "", "Write the report to a file instead of stdout")
	addPollFlags(cmd)
}
