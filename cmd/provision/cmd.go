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

package provision

import (
	"context"

	"github.com/spf13/cobra"
)

func NewCommand() (*cobra.Command, error) {
	opts := DefaultProvisionOptions()

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision an Event Hubs test environment",
		Long: `Provision an Event Hubs test environment.

This ensures a resource group, an Event Hubs namespace and an event hub
exist, creates a service principal with a generated password, and grants the
configured roles to the principal. Resources that already exist are reused
and left in place on teardown.

The state needed for teardown is written to the state file; the principal's
appId and password are printed once and stored nowhere.`,
		Example: `  # Provision from an environment file
  eventhubs-testenv provision --environment-file environment.yaml

  # Provision from flags alone
  eventhubs-testenv provision \
    --subscription "Test Subscription" \
    --resource-group eh-e2e-rg \
    --namespace eh-e2e-ns \
    --event-hub eh-e2e-hub \
    --region eastus \
    --principal-name eh-e2e-principal`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context())
		},
	}

	if err := BindProvisionOptions(opts, cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (o *RawProvisionOptions) Run(ctx context.Context) error {
	validated, err := o.Validate()
	if err != nil {
		return err
	}
	completed, err := validated.Complete(ctx)
	if err != nil {
		return err
	}
	return completed.ProvisionEnvironment(ctx)
}
