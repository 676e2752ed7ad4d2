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

package regions

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/Azure/eventhubs-testenv/pkg/azauth"
	"github.com/Azure/eventhubs-testenv/pkg/azure"
	"github.com/Azure/eventhubs-testenv/pkg/output"
)

func DefaultRegionsOptions() *RawRegionsOptions {
	return &RawRegionsOptions{
		OutputFormat: string(output.FormatJSON),
	}
}

func BindRegionsOptions(opts *RawRegionsOptions, cmd *cobra.Command) error {
	cmd.Flags().StringVar(&opts.Subscription, "subscription", opts.Subscription, "display name of the subscription to query")
	cmd.Flags().StringVar(&opts.OutputFormat, "output", opts.OutputFormat, "output format, one of 'json' or 'yaml'")

	if err := cmd.MarkFlagRequired("subscription"); err != nil {
		return fmt.Errorf("failed to mark flag %q as required: %w", "subscription", err)
	}
	return nil
}

// RawRegionsOptions holds input values.
type RawRegionsOptions struct {
	Subscription string
	OutputFormat string
}

// validatedRegionsOptions is a private wrapper that enforces a call of Validate() before Complete() can be invoked.
type validatedRegionsOptions struct {
	*RawRegionsOptions
	Format output.Format
}

type ValidatedRegionsOptions struct {
	// Embed a private pointer that cannot be instantiated outside of this package.
	*validatedRegionsOptions
}

// completedRegionsOptions is a private wrapper that enforces a call of Complete() before listing can be invoked.
type completedRegionsOptions struct {
	Clients *azure.Clients
	Format  output.Format
}

type RegionsOptions struct {
	// Embed a private pointer that cannot be instantiated outside of this package.
	*completedRegionsOptions
}

func (o *RawRegionsOptions) Validate() (*ValidatedRegionsOptions, error) {
	if o.Subscription == "" {
		return nil, fmt.Errorf("--subscription is required")
	}
	format := output.Format(o.OutputFormat)
	if format != output.FormatJSON && format != output.FormatYAML {
		return nil, fmt.Errorf("invalid output format %q, must be one of 'json' or 'yaml'", o.OutputFormat)
	}

	return &ValidatedRegionsOptions{
		validatedRegionsOptions: &validatedRegionsOptions{
			RawRegionsOptions: o,
			Format:            format,
		},
	}, nil
}

func (o *ValidatedRegionsOptions) Complete(ctx context.Context) (*RegionsOptions, error) {
	if err := azauth.Setup(ctx); err != nil {
		return nil, fmt.Errorf("failed to set up authentication: %w", err)
	}
	credential, err := azauth.GetAzureTokenCredentials()
	if err != nil {
		return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
	}

	subscription, err := azure.ResolveSubscription(ctx, credential, o.Subscription)
	if err != nil {
		return nil, err
	}
	clients, err := azure.NewClients(subscription.ID, credential)
	if err != nil {
		return nil, err
	}

	return &RegionsOptions{
		completedRegionsOptions: &completedRegionsOptions{
			Clients: clients,
			Format:  o.Format,
		},
	}, nil
}

func (o *RegionsOptions) ListRegions(ctx context.Context) error {
	regions, err := o.Clients.ListSupportedRegions(ctx, azure.ResourceTypeEventHubNamespaces)
	if err != nil {
		return err
	}

	rendered, err := output.Render(o.Format, sets.List(regions))
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}
