// Copyright 2025 Microsoft Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package retry provides a bounded retry-once helper for calls against
// eventually consistent services. There is deliberately no backoff and no
// jitter: callers get exactly one retry after a fixed delay.
package retry

import (
	"context"
	"errors"
	"time"
)

// Result classifies how an Once invocation concluded.
type Result int

const (
	// Succeeded means the first attempt succeeded; no retry was issued.
	Succeeded Result = iota
	// SucceededOnRetry means the first attempt failed and the single retry
	// succeeded.
	SucceededOnRetry
	// Exhausted means both the first attempt and the retry failed.
	Exhausted
)

func (r Result) String() string {
	switch r {
	case Succeeded:
		return "succeeded"
	case SucceededOnRetry:
		return "succeeded on retry"
	case Exhausted:
		return "exhausted retries"
	default:
		return "unknown"
	}
}

// Outcome reports the result of a bounded retry together with the attempts
// issued and the errors observed along the way.
type Outcome struct {
	Result   Result
	Attempts int
	// Err joins the errors of all failed attempts. It is non-nil for
	// Exhausted and for SucceededOnRetry (the first attempt's error).
	Err error
}

// Retried reports whether a second attempt was issued at all, regardless of
// how it went.
func (o Outcome) Retried() bool {
	return o.Attempts > 1
}

// Once runs op and, if it fails, waits delay and runs it exactly once more.
// The wait is context-aware: a cancelled context cuts the delay short and the
// outcome is Exhausted with the context error joined in.
func Once(ctx context.Context, delay time.Duration, op func(ctx context.Context) error) Outcome {
	err := op(ctx)
	if err == nil {
		return Outcome{Result: Succeeded, Attempts: 1}
	}

	select {
	case <-ctx.Done():
		return Outcome{Result: Exhausted, Attempts: 1, Err: errors.Join(err, ctx.Err())}
	case <-time.After(delay):
	}

	retryErr := op(ctx)
	if retryErr == nil {
		return Outcome{Result: SucceededOnRetry, Attempts: 2, Err: err}
	}
	return Outcome{Result: Exhausted, Attempts: 2, Err: errors.Join(err, retryErr)}
}
