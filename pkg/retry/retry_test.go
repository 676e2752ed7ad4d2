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

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOnce(t *testing.T) {
	failure := errors.New("boom")

	tests := []struct {
		name         string
		errs         []error
		wantResult   Result
		wantAttempts int
		wantRetried  bool
		wantErr      bool
	}{
		{
			name:         "first attempt succeeds",
			errs:         []error{nil},
			wantResult:   Succeeded,
			wantAttempts: 1,
		},
		{
			name:         "retry succeeds",
			errs:         []error{failure, nil},
			wantResult:   SucceededOnRetry,
			wantAttempts: 2,
			wantRetried:  true,
			wantErr:      true,
		},
		{
			name:         "both attempts fail",
			errs:         []error{failure, failure},
			wantResult:   Exhausted,
			wantAttempts: 2,
			wantRetried:  true,
			wantErr:      true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			outcome := Once(context.Background(), time.Millisecond, func(ctx context.Context) error {
				err := tc.errs[calls]
				calls++
				return err
			})
			assert.Equal(t, tc.wantResult, outcome.Result)
			assert.Equal(t, tc.wantAttempts, outcome.Attempts)
			assert.Equal(t, tc.wantAttempts, calls)
			assert.Equal(t, tc.wantRetried, outcome.Retried())
			if tc.wantErr {
				assert.Error(t, outcome.Err)
			} else {
				assert.NoError(t, outcome.Err)
			}
		})
	}
}

func TestOnceCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	outcome := Once(ctx, time.Hour, func(ctx context.Context) error {
		calls++
		return errors.New("boom")
	})

	assert.Equal(t, Exhausted, outcome.Result)
	assert.Equal(t, 1, calls, "no retry should be issued once the context is done")
	assert.ErrorIs(t, outcome.Err, context.Canceled)
}
