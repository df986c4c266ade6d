package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/iksnae/assistant-runner/internal"
	"github.com/spf13/cobra"
)

var (
	runAssistantID  string
	runInstructions string
	runToolOutputs  []string
	pollInterval    time.Duration
	pollTimeout     time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start and inspect runs",
}

var runStartCmd = &cobra.Command{
	Use:   "start <thread-id>",
	Short: "Run an assistant against a thread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		run, err := a.managers.Runs.Start(cmd.Context(), args[0], runAssistantID, runInstructions)
		if err != nil {
			return fmt.Errorf("error while creating a run: %w", err)
		}
		internal.PrintSuccess(fmt.Sprintf("Started run (of %s) RunID: %s", args[0], run.ID))
		return nil
	},
}

var runStatusCmd = &cobra.Command{
	Use:   "status <thread-id> <run-id>",
	Short: "Show the status of a run",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		run, err := a.managers.Runs.Status(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("error while retrieving run status: %w", err)
		}
		printRun(cmd.OutOrStdout(), run)
		return nil
	},
}

var runWaitCmd = &cobra.Command{
	Use:   "wait <thread-id> <run-id>",
	Short: "Poll a run until it completes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		poller := a.newPoller(cmd)
		run, err := poller.Wait(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("error while processing assistant response: %w", err)
		}
		printRun(cmd.OutOrStdout(), run)
		return nil
	},
}

var runSubmitCmd = &cobra.Command{
	Use:   "submit-tool-outputs <thread-id> <run-id>",
	Short: "Submit tool outputs to a run waiting in requires_action",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputs, err := parseToolOutputs(runToolOutputs)
		if err != nil {
			return err
		}

		a, err := loadApp()
		if err != nil {
			return err
		}
		if err := a.managers.Runs.SubmitToolOutputs(cmd.Context(), args[0], args[1], outputs); err != nil {
			return fmt.Errorf("error while submitting tool outputs: %w", err)
		}
		internal.PrintSuccess(fmt.Sprintf("Submitted %d tool output(s) to run %s", len(outputs), args[1]))
		return nil
	},
}

// parseToolOutputs keeps the flag order and rejects a tool call answered twice
func parseToolOutputs(pairs []string) ([]internal.ToolOutput, error) {
	outputs := make([]internal.ToolOutput, 0, len(pairs))
	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		id, out, ok := strings.Cut(p, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid tool_call_id=output pair %q", p)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate output for tool call %s", id)
		}
		seen[id] = true
		outputs = append(outputs, internal.ToolOutput{ToolCallID: id, Output: out})
	}
	return outputs, nil
}

// newPoller builds a poller from config, overridden by the poll flags
func (a *app) newPoller(cmd *cobra.Command) *internal.Poller {
	p := internal.NewPoller(a.managers.Runs)
	p.Interval = a.cfg.PollInterval
	p.Timeout = a.cfg.PollTimeout
	if f := cmd.Flags().Lookup("poll-interval"); f != nil && f.Changed {
		p.Interval = pollInterval
	}
	if f := cmd.Flags().Lookup("poll-timeout"); f != nil && f.Changed {
		p.Timeout = pollTimeout
	}
	p.OnStatus = internal.PrintRunStatus
	return p
}

func addPollFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", internal.DefaultPollInterval, "Delay between run status checks")
	cmd.Flags().DurationVar(&pollTimeout, "poll-timeout", 0, "Give up waiting for the run after this long (0 waits forever)")
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.AddCommand(runStartCmd, runStatusCmd, runWaitCmd, runSubmitCmd)

	runStartCmd.Flags().StringVar(&runAssistantID, "assistant-id", "", "Assistant to run (required)")
	runStartCmd.Flags().StringVar(&runInstructions, "instructions", "", "Override the assistant instructions for this run")
	_ = runStartCmd.MarkFlagRequired("assistant-id")

	runSubmitCmd.Flags().StringArrayVar(&runToolOutputs, "output", nil, "Tool output as tool_call_id=output (repeatable)")
	_ = runSubmitCmd.MarkFlagRequired("output")

	addPollFlags(runWaitCmd)
}
