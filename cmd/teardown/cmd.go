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

package teardown

import (
	"context"

	"github.com/spf13/cobra"
)

func NewCommand() (*cobra.Command, error) {
	opts := DefaultTeardownOptions()

	cmd := &cobra.Command{
		Use:   "teardown",
		Short: "Tear down a previously provisioned test environment",
		Long: `Tear down a previously provisioned test environment.

Only resources the provision run created are removed; pre-existing resources
it reused are left untouched. Every removal is attempted independently, and
failures are reported in the summary for manual cleanup instead of aborting
the remaining steps.`,
		Example: `  eventhubs-testenv teardown --state-file testenv-state.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context())
		},
	}

	if err := BindTeardownOptions(opts, cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (o *RawTeardownOptions) Run(ctx context.Context) error {
	validated, err := o.Validate()
	if err != nil {
		return err
	}
	completed, err := validated.Complete(ctx)
	if err != nil {
		return err
	}
	return completed.TeardownEnvironment(ctx)
}
