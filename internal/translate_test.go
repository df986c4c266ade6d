package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var slept []time.Duration
	original := sleepFunc
	sleepFunc = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	t.Cleanup(func() { sleepFunc = original })
	return &slept
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Condition
	}{
		{"nil", nil, ConditionUnknown},
		{"400", &FakeStatusError{Code: 400}, ConditionBadRequest},
		{"401", &FakeStatusError{Code: 401}, ConditionAuthentication},
		{"429", &FakeStatusError{Code: 429}, ConditionRateLimit},
		{"404", &FakeStatusError{Code: 404}, ConditionAPI},
		{"500", &FakeStatusError{Code: 500}, ConditionAPI},
		{"wrapped status", fmt.Errorf("call: %w", &FakeStatusError{Code: 401}), ConditionAuthentication},
		{"invalid value", fmt.Errorf("%w: bad", ErrInvalidValue), ConditionInvalidValue},
		{"deadline", context.DeadlineExceeded, ConditionTimeout},
		{"net timeout", timeoutError{}, ConditionTimeout},
		{"not exist", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}, ConditionNotFound},
		{"permission", fs.ErrPermission, ConditionPermission},
		{"connection", fmt.Errorf("%w: %w", ErrConnection, errors.New("connection refused")), ConditionAPI},
		{"other", errors.New("something else"), ConditionUnknown},
		{"cancelled", context.Canceled, ConditionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslate_MappedConditions(t *testing.T) {
	sources := map[Condition]error{
		ConditionBadRequest:     &FakeStatusError{Code: 400, Message: "bad request"},
		ConditionAuthentication: &FakeStatusError{Code: 401, Message: "invalid key"},
		ConditionRateLimit:      &FakeStatusError{Code: 429, Message: "slow down"},
		ConditionAPI:            &FakeStatusError{Code: 500, Message: "server error"},
		ConditionNotFound:       &fs.PathError{Op: "open", Path: "data.csv", Err: fs.ErrNotExist},
		ConditionPermission:     &fs.PathError{Op: "open", Path: "data.csv", Err: fs.ErrPermission},
		ConditionInvalidValue:   fmt.Errorf("%w: bad input", ErrInvalidValue),
		ConditionTimeout:        context.DeadlineExceeded,
	}
	categories := []Category{CategoryAssistant, CategoryFile, CategoryMessage, CategoryRun, CategoryThread}

	for _, cat := range categories {
		for cond, src := range sources {
			t.Run(cat.String()+"/"+cond.String(), func(t *testing.T) {
				got := Translate(cat, "op", src)
				if !cat.Maps(cond) {
					if got != src {
						t.Errorf("Translate() = %v, want the original error", got)
					}
					return
				}
				gotCat, ok := CategoryOf(got)
				if !ok || gotCat != cat {
					t.Fatalf("Translate() = %T, want %s error", got, cat)
				}
				if !strings.Contains(got.Error(), src.Error()) {
					t.Errorf("Translate() message %q does not carry %q", got.Error(), src.Error())
				}
				if !errors.Is(got, src) {
					t.Error("translated error does not wrap the source")
				}
			})
		}
	}
}

func TestCategoryMaps(t *testing.T) {
	tests := []struct {
		cat  Category
		cond Condition
		want bool
	}{
		{CategoryAssistant, ConditionAuthentication, true},
		{CategoryAssistant, ConditionTimeout, false},
		{CategoryThread, ConditionNotFound, false},
		{CategoryMessage, ConditionPermission, false},
		{CategoryFile, ConditionNotFound, true},
		{CategoryFile, ConditionInvalidValue, true},
		{CategoryRun, ConditionPermission, true},
		{CategoryRun, ConditionTimeout, true},
		{CategoryRun, ConditionNotFound, false},
		{CategoryFile, ConditionUnknown, false},
	}
	for _, tt := range tests {
		if got := tt.cat.Maps(tt.cond); got != tt.want {
			t.Errorf("%s.Maps(%s) = %v, want %v", tt.cat, tt.cond, got, tt.want)
		}
	}
}

func TestTranslate_Passthrough(t *testing.T) {
	src := errors.New("unexpected")
	if got := Translate(CategoryAssistant, "op", src); got != src {
		t.Errorf("Translate() = %v, want identical error", got)
	}
	if got := Translate(CategoryAssistant, "op", nil); got != nil {
		t.Errorf("Translate(nil) = %v, want nil", got)
	}
}

func TestCall_Success(t *testing.T) {
	got, err := Call(context.Background(), CategoryAssistant, "op", func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Errorf("Call() = %q, %v, want ok, nil", got, err)
	}
}

func TestCall_UnmappedErrorIsReturnedUnchanged(t *testing.T) {
	src := errors.New("disk on fire")
	_, err := Call(context.Background(), CategoryThread, "create", func(ctx context.Context) (int, error) {
		return 0, src
	})
	if err != src {
		t.Errorf("Call() error = %v, want identical error", err)
	}
}

func TestCall_FileTimeoutRetriesOnce(t *testing.T) {
	slept := stubSleep(t)

	calls := 0
	_, err := Call(context.Background(), CategoryFile, "upload", func(ctx context.Context) (*File, error) {
		calls++
		if calls == 1 {
			return nil, context.DeadlineExceeded
		}
		return &File{ID: "file_1"}, nil
	})

	if calls != 2 {
		t.Errorf("fn called %d times, want 2", calls)
	}
	if len(*slept) != 1 || (*slept)[0] != RetryDelay {
		t.Errorf("slept %v, want one %s delay", *slept, RetryDelay)
	}
	// The retry outcome is discarded, so even a successful second attempt
	// surfaces the original timeout as a FileError.
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("Call() error = %v, want *FileError", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("FileError does not wrap the original timeout: %v", err)
	}
}

func TestCall_FileTimeoutPersists(t *testing.T) {
	slept := stubSleep(t)

	calls := 0
	_, err := Call(context.Background(), CategoryFile, "upload", func(ctx context.Context) (*File, error) {
		calls++
		return nil, timeoutError{}
	})

	if calls != 2 {
		t.Errorf("fn called %d times, want 2", calls)
	}
	if len(*slept) != 1 {
		t.Errorf("slept %v, want one delay", *slept)
	}
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("Call() error = %v, want *FileError", err)
	}
	if Classify(fe.Err) != ConditionTimeout {
		t.Errorf("FileError wraps %v, want a timeout", fe.Err)
	}
}

func TestCall_FileTimeoutCancelledDuringDelay(t *testing.T) {
	stubSleep(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, CategoryFile, "upload", func(ctx context.Context) error {
		calls++
		return timeoutError{}
	})
	if calls != 1 {
		t.Errorf("fn called %d times, want 1 when cancelled during the delay", calls)
	}
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Errorf("Do() error = %v, want *FileError", err)
	}
}

func TestCall_RunTimeoutNotRetried(t *testing.T) {
	slept := stubSleep(t)

	calls := 0
	err := Do(context.Background(), CategoryRun, "status", func(ctx context.Context) error {
		calls++
		return context.DeadlineExceeded
	})
	if calls != 1 || len(*slept) != 0 {
		t.Errorf("calls = %d, sleeps = %d, want 1 and 0", calls, len(*slept))
	}
	var re *RunError
	if !errors.As(err, &re) {
		t.Errorf("Do() error = %v, want *RunError", err)
	}
}

func TestCall_FileNotFound(t *testing.T) {
	_, err := Call(context.Background(), CategoryFile, "upload", func(ctx context.Context) (*os.File, error) {
		return os.Open("definitely-missing.csv")
	})
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("Call() error = %v, want *FileError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("FileError does not wrap fs.ErrNotExist")
	}
}
