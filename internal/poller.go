package internal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultPollInterval is the delay before each run status check
const DefaultPollInterval = 5 * time.Second

// RunStatusGetter reads run status; satisfied by *RunManager
type RunStatusGetter interface {
	Status(ctx context.Context, threadID, runID string) (*Run, error)
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) error
}

// ToolHandler produces outputs for a run waiting in requires_action
type ToolHandler func(ctx context.Context, run *Run) ([]ToolOutput, error)

// Poller waits for a run to complete
type Poller struct {
	Runs RunStatusGetter

	// Interval is slept before every status check
	Interval time.Duration
	// Timeout bounds the whole wait; zero waits forever
	Timeout time.Duration

	OnStatus         func(run *Run)
	OnRequiresAction ToolHandler

	Sleep func(ctx context.Context, d time.Duration) error
	Now   func() time.Time
}

// NewPoller creates a poller with the default interval and no deadline
func NewPoller(runs RunStatusGetter) *Poller {
	return &Poller{Runs: runs, Interval: DefaultPollInterval}
}

// Wait polls until the run completes. Other terminal states end in a
// RunError, an expired deadline in a RunTimeoutError.
func (p *Poller) Wait(ctx context.Context, threadID, runID string) (*Run, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepFunc
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	start := now()
	var last RunStatus
	for {
		d := interval
		if p.Timeout > 0 {
			if remaining := p.Timeout - now().Sub(start); remaining < d {
				d = remaining
			}
		}
		if err := sleep(ctx, d); err != nil {
			return nil, err
		}

		run, err := p.Runs.Status(ctx, threadID, runID)
		if err != nil {
			return nil, err
		}
		last = run.Status
		if p.OnStatus != nil {
			p.OnStatus(run)
		}

		switch run.Status {
		case RunStatusCompleted:
			return run, nil
		case RunStatusRequiresAction:
			if err := p.handleRequiresAction(ctx, threadID, run); err != nil {
				return nil, err
			}
		case RunStatusFailed, RunStatusCancelled, RunStatusExpired, RunStatusIncomplete:
			reason := run.LastError
			if reason == "" {
				reason = "no details"
			}
			return run, &RunError{Op: "wait", Err: fmt.Errorf("run %s ended with status %s: %s", run.ID, run.Status, reason)}
		}

		if waited := now().Sub(start); p.Timeout > 0 && waited >= p.Timeout {
			return nil, &RunTimeoutError{RunID: runID, LastStatus: last, Waited: waited}
		}
	}
}

func (p *Poller) handleRequiresAction(ctx context.Context, threadID string, run *Run) error {
	if p.OnRequiresAction == nil {
		return &RunError{Op: "wait", Err: fmt.Errorf("run %s requires tool outputs but no tool handler is configured", run.ID)}
	}
	outputs, err := p.OnRequiresAction(ctx, run)
	if err != nil {
		return &RunError{Op: "tool handler", Err: err}
	}
	return p.Runs.SubmitToolOutputs(ctx, threadID, run.ID, outputs)
}

// IsRunTimeout reports whether err is a poll deadline expiry
func IsRunTimeout(err error) bool {
	var te *RunTimeoutError
	return errors.As(err, &te)
}
