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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Azure/eventhubs-testenv/pkg/azauth"
	"github.com/Azure/eventhubs-testenv/pkg/azure"
	"github.com/Azure/eventhubs-testenv/pkg/graph"
	"github.com/Azure/eventhubs-testenv/pkg/output"
	"github.com/Azure/eventhubs-testenv/pkg/testenv"
)

func DefaultTeardownOptions() *RawTeardownOptions {
	return &RawTeardownOptions{
		StateFile:    "testenv-state.yaml",
		OutputFormat: string(output.FormatJSON),
	}
}

func BindTeardownOptions(opts *RawTeardownOptions, cmd *cobra.Command) error {
	cmd.Flags().StringVar(&opts.StateFile, "state-file", opts.StateFile, "path to the state file written by provision")
	cmd.Flags().StringVar(&opts.OutputFormat, "output", opts.OutputFormat, "output format, one of 'json' or 'yaml'")

	if err := cmd.MarkFlagFilename("state-file"); err != nil {
		return fmt.Errorf("failed to mark flag %q as a file: %w", "state-file", err)
	}
	return nil
}

// RawTeardownOptions holds input values.
type RawTeardownOptions struct {
	StateFile    string
	OutputFormat string
}

// validatedTeardownOptions is a private wrapper that enforces a call of Validate() before Complete() can be invoked.
type validatedTeardownOptions struct {
	*RawTeardownOptions
	Format output.Format
}

type ValidatedTeardownOptions struct {
	// Embed a private pointer that cannot be instantiated outside of this package.
	*validatedTeardownOptions
}

// completedTeardownOptions is a private wrapper that enforces a call of Complete() before teardown can be invoked.
type completedTeardownOptions struct {
	State       *testenv.State
	Provisioner *testenv.Provisioner
	Format      output.Format
}

type TeardownOptions struct {
	// Embed a private pointer that cannot be instantiated outside of this package.
	*completedTeardownOptions
}

func (o *RawTeardownOptions) Validate() (*ValidatedTeardownOptions, error) {
	if _, err := os.Stat(o.StateFile); err != nil {
		return nil, fmt.Errorf("state file %s is not readable: %w", o.StateFile, err)
	}

	format := output.Format(o.OutputFormat)
	if format != output.FormatJSON && format != output.FormatYAML {
		return nil, fmt.Errorf("invalid output format %q, must be one of 'json' or 'yaml'", o.OutputFormat)
	}

	return &ValidatedTeardownOptions{
		validatedTeardownOptions: &validatedTeardownOptions{
			RawTeardownOptions: o,
			Format:             format,
		},
	}, nil
}

func (o *ValidatedTeardownOptions) Complete(ctx context.Context) (*TeardownOptions, error) {
	state, err := testenv.LoadState(o.StateFile)
	if err != nil {
		return nil, err
	}

	if err := azauth.Setup(ctx); err != nil {
		return nil, fmt.Errorf("failed to set up authentication: %w", err)
	}
	credential, err := azauth.GetAzureTokenCredentials()
	if err != nil {
		return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
	}

	clients, err := azure.NewClients(state.SubscriptionID, credential)
	if err != nil {
		return nil, err
	}
	graphClient, err := graph.NewClient(credential)
	if err != nil {
		return nil, err
	}

	return &TeardownOptions{
		completedTeardownOptions: &completedTeardownOptions{
			State:       state,
			Provisioner: testenv.NewProvisioner(clients, graphClient),
			Format:      o.Format,
		},
	}, nil
}

func (o *TeardownOptions) TeardownEnvironment(ctx context.Context) error {
	summary := o.Provisioner.Teardown(ctx, o.State)

	rendered, err := output.Render(o.Format, summary)
	if err != nil {
		return err
	}
	fmt.Println(rendered)

	if failed := summary.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d resource(s) could not be removed and need manual cleanup", len(failed))
	}
	return nil
}
