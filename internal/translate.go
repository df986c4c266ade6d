package internal

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"time"
)

// StatusError is implemented by transport errors that carry an HTTP status
type StatusError interface {
	error
	StatusCode() int
}

// Condition is the transport-level failure class of an error
type Condition int

const (
	ConditionUnknown Condition = iota
	ConditionBadRequest
	ConditionAuthentication
	ConditionRateLimit
	ConditionAPI
	ConditionNotFound
	ConditionPermission
	ConditionTimeout
	ConditionInvalidValue
)

func (c Condition) String() string {
	switch c {
	case ConditionBadRequest:
		return "bad-request"
	case ConditionAuthentication:
		return "authentication"
	case ConditionRateLimit:
		return "rate-limit"
	case ConditionAPI:
		return "api"
	case ConditionNotFound:
		return "not-found"
	case ConditionPermission:
		return "permission"
	case ConditionTimeout:
		return "timeout"
	case ConditionInvalidValue:
		return "invalid-value"
	default:
		return "unknown"
	}
}

// Classify maps err onto a Condition
func Classify(err error) Condition {
	if err == nil {
		return ConditionUnknown
	}

	var se StatusError
	if errors.As(err, &se) {
		switch se.StatusCode() {
		case 400:
			return ConditionBadRequest
		case 401:
			return ConditionAuthentication
		case 429:
			return ConditionRateLimit
		default:
			return ConditionAPI
		}
	}

	if errors.Is(err, ErrInvalidValue) {
		return ConditionInvalidValue
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ConditionTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ConditionTimeout
	}
	if errors.Is(err, ErrConnection) {
		return ConditionAPI
	}
	if errors.Is(err, fs.ErrNotExist) {
		return ConditionNotFound
	}
	if errors.Is(err, fs.ErrPermission) {
		return ConditionPermission
	}
	return ConditionUnknown
}

var apiConditions = []Condition{
	ConditionBadRequest,
	ConditionRateLimit,
	ConditionAuthentication,
	ConditionAPI,
}

var mappedConditions = map[Category][]Condition{
	CategoryAssistant: apiConditions,
	CategoryMessage:   apiConditions,
	CategoryThread:    apiConditions,
	CategoryFile: append(append([]Condition{}, apiConditions...),
		ConditionNotFound, ConditionPermission, ConditionInvalidValue, ConditionTimeout),
	CategoryRun: append(append([]Condition{}, apiConditions...),
		ConditionPermission, ConditionTimeout),
}

// Maps reports whether category translates errors of condition c
func (cat Category) Maps(c Condition) bool {
	for _, m := range mappedConditions[cat] {
		if m == c {
			return true
		}
	}
	return false
}

// RetryDelay is how long the file category waits before its single timeout retry
var RetryDelay = 5 * time.Second

// sleepFunc is swapped in tests
var sleepFunc = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Translate converts err into the category's domain error when its condition
// is mapped. Unmapped errors are returned as-is.
func Translate(category Category, op string, err error) error {
	if err == nil {
		return nil
	}
	if category.Maps(Classify(err)) {
		return NewCategoryError(category, op, err)
	}
	return err
}

// Call runs fn as one remote request and translates its error for category
func Call[T any](ctx context.Context, category Category, op string, fn func(context.Context) (T, error)) (T, error) {
	result, err := fn(ctx)
	if err == nil {
		return result, nil
	}

	if category == CategoryFile && Classify(err) == ConditionTimeout {
		LogWarn("%s: timed out, retrying once in %s", op, RetryDelay)
		if sleepErr := sleepFunc(ctx, RetryDelay); sleepErr == nil {
			// The retry's outcome is discarded and FileError is returned even
			// if the upload went through.
			// TODO: return the retry result once callers handle a late success.
			_, _ = fn(ctx)
		}
		var zero T
		return zero, NewCategoryError(category, op, err)
	}

	var zero T
	return zero, Translate(category, op, err)
}

// Do is Call for requests without a result
func Do(ctx context.Context, category Category, op string, fn func(context.Context) error) error {
	_, err := Call(ctx, category, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
