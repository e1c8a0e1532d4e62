// Package backend implements the generation capabilities behind the
// execution engine: remote text models (Anthropic, OpenAI), an HTTP image
// endpoint, and deterministic local templates that act as the terminal
// fallback tier. All back-end faults are reported as a typed Failure so the
// engine can drive its tier transitions without string matching.
package backend

import (
	"context"
	"errors"
	"fmt"
)

// FailureKind classifies a back-end fault.
type FailureKind string

const (
	// FailureTimeout covers deadline expiry and cancellation of a call.
	FailureTimeout FailureKind = "timeout"
	// FailureUnavailable covers connection errors and 5xx-equivalent
	// responses.
	FailureUnavailable FailureKind = "unavailable"
	// FailureWarmingUp is the 503 "model still loading" signal. It is the
	// only kind that earns a same-tier retry.
	FailureWarmingUp FailureKind = "warming_up"
	// FailureMalformed covers empty or undecodable payloads.
	FailureMalformed FailureKind = "malformed_response"
)

// Failure is the error type every back-end call returns on fault.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("backend %s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("backend %s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }

// KindOf extracts the failure kind from an error chain. Errors that are not
// a *Failure report FailureUnavailable.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return FailureUnavailable
}

// IsWarmingUp reports whether the error is the warming-up signal.
func IsWarmingUp(err error) bool {
	return KindOf(err) == FailureWarmingUp
}

// classify wraps an arbitrary transport error as a Failure, mapping context
// expiry to the timeout kind.
func classify(op string, err error) *Failure {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Failure{Kind: FailureTimeout, Message: op, Err: err}
	}
	return &Failure{Kind: FailureUnavailable, Message: op, Err: err}
}
