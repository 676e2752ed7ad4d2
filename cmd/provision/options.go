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
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/Azure/eventhubs-testenv/pkg/azauth"
	"github.com/Azure/eventhubs-testenv/pkg/azure"
	"github.com/Azure/eventhubs-testenv/pkg/graph"
	"github.com/Azure/eventhubs-testenv/pkg/naming"
	"github.com/Azure/eventhubs-testenv/pkg/output"
	"github.com/Azure/eventhubs-testenv/pkg/testenv"
)

func DefaultProvisionOptions() *RawProvisionOptions {
	return &RawProvisionOptions{
		StateFile:    "testenv-state.yaml",
		OutputFormat: string(output.FormatJSON),
	}
}

func BindProvisionOptions(opts *RawProvisionOptions, cmd *cobra.Command) error {
	cmd.Flags().StringVar(&opts.EnvironmentFile, "environment-file", opts.EnvironmentFile, "path to an environment YAML file; individual flags override its values")
	cmd.Flags().StringVar(&opts.NamePrefix, "name-prefix", opts.NamePrefix, "derive unset resource names from this prefix plus a digest of subscription and principal name")
	cmd.Flags().StringVar(&opts.Subscription, "subscription", opts.Subscription, "display name of the subscription to provision in")
	cmd.Flags().StringVar(&opts.ResourceGroup, "resource-group", opts.ResourceGroup, "name of the resource group")
	cmd.Flags().StringVar(&opts.Namespace, "namespace", opts.Namespace, "name of the Event Hubs namespace")
	cmd.Flags().StringVar(&opts.EventHub, "event-hub", opts.EventHub, "name of the event hub")
	cmd.Flags().StringVar(&opts.Region, "region", opts.Region, "region to create resources in")
	cmd.Flags().StringVar(&opts.PrincipalName, "principal-name", opts.PrincipalName, "display name for the service principal")
	cmd.Flags().StringArrayVar(&opts.NamespaceRoles, "namespace-role", opts.NamespaceRoles, "role to grant the principal at namespace scope, repeatable")
	cmd.Flags().StringArrayVar(&opts.ResourceGroupRoles, "resource-group-role", opts.ResourceGroupRoles, "role to grant the principal at resource group scope, repeatable")
	cmd.Flags().StringVar(&opts.StateFile, "state-file", opts.StateFile, "path to write the teardown state to")
	cmd.Flags().StringVar(&opts.OutputFormat, "output", opts.OutputFormat, "output format, one of 'json' or 'yaml'")

	for _, flag := range []string{"environment-file", "state-file"} {
		if err := cmd.MarkFlagFilename(flag); err != nil {
			return fmt.Errorf("failed to mark flag %q as a file: %w", flag, err)
		}
	}
	return nil
}

// RawProvisionOptions holds input values.
type RawProvisionOptions struct {
	EnvironmentFile string
	NamePrefix      string

	Subscription       string
	ResourceGroup      string
	Namespace          string
	EventHub           string
	Region             string
	PrincipalName      string
	NamespaceRoles     []string
	ResourceGroupRoles []string

	StateFile    string
	OutputFormat string
}

// validatedProvisionOptions is a private wrapper that enforces a call of Validate() before Complete() can be invoked.
type validatedProvisionOptions struct {
	*RawProvisionOptions
	Environment *testenv.Environment
	Format      output.Format
}

type ValidatedProvisionOptions struct {
	// Embed a private pointer that cannot be instantiated outside of this package.
	*validatedProvisionOptions
}

// completedProvisionOptions is a private wrapper that enforces a call of Complete() before provisioning can be invoked.
type completedProvisionOptions struct {
	Environment  *testenv.Environment
	Subscription azure.Subscription
	Provisioner  *testenv.Provisioner
	StateFile    string
	Format       output.Format
}

type ProvisionOptions struct {
	// Embed a private pointer that cannot be instantiated outside of this package.
	*completedProvisionOptions
}

// environment assembles the effective environment: the file, when given, is
// the base and every set flag overrides it.
func (o *RawProvisionOptions) environment() (*testenv.Environment, error) {
	env := &testenv.Environment{}
	if o.EnvironmentFile != "" {
		loaded, err := testenv.LoadEnvironment(o.EnvironmentFile)
		if err != nil {
			return nil, err
		}
		env = loaded
	}
	if o.Subscription != "" {
		env.Subscription = o.Subscription
	}
	if o.ResourceGroup != "" {
		env.ResourceGroup = o.ResourceGroup
	}
	if o.Namespace != "" {
		env.Namespace = o.Namespace
	}
	if o.EventHub != "" {
		env.EventHub = o.EventHub
	}
	if o.Region != "" {
		env.Region = o.Region
	}
	if o.PrincipalName != "" {
		env.PrincipalName = o.PrincipalName
	}
	if len(o.NamespaceRoles) > 0 {
		env.NamespaceRoles = o.NamespaceRoles
	}
	if len(o.ResourceGroupRoles) > 0 {
		env.ResourceGroupRoles = o.ResourceGroupRoles
	}
	if o.NamePrefix != "" {
		if err := deriveNames(env, o.NamePrefix); err != nil {
			return nil, err
		}
	}
	env.Default()
	return env, nil
}

// deriveNames fills in names that are still unset from the prefix plus a
// digest of the subscription and principal name, so repeated runs with the
// same inputs address the same resources.
func deriveNames(env *testenv.Environment, prefix string) error {
	const suffixLength = 8
	digestArgs := []string{env.Subscription, env.PrincipalName}

	var err error
	if env.ResourceGroup == "" {
		if env.ResourceGroup, err = naming.ResourceGroupName(prefix, suffixLength, digestArgs...); err != nil {
			return err
		}
	}
	if env.Namespace == "" {
		if env.Namespace, err = naming.EventHubsNamespaceName(prefix, suffixLength, digestArgs...); err != nil {
			return err
		}
	}
	if env.EventHub == "" {
		if env.EventHub, err = naming.EventHubName(prefix, suffixLength, digestArgs...); err != nil {
			return err
		}
	}
	return nil
}

func (o *RawProvisionOptions) Validate() (*ValidatedProvisionOptions, error) {
	env, err := o.environment()
	if err != nil {
		return nil, err
	}

	for _, check := range []struct {
		value string
		flag  string
	}{
		{env.Subscription, "subscription"},
		{env.ResourceGroup, "resource-group"},
		{env.Namespace, "namespace"},
		{env.EventHub, "event-hub"},
		{env.Region, "region"},
	} {
		if check.value == "" {
			return nil, fmt.Errorf("--%s (or the corresponding environment file field) is required", check.flag)
		}
	}
	if err := testenv.ValidatePrincipalName(env.PrincipalName); err != nil {
		return nil, err
	}
	if o.StateFile == "" {
		return nil, fmt.Errorf("--state-file must not be empty")
	}

	format := output.Format(o.OutputFormat)
	if format != output.FormatJSON && format != output.FormatYAML {
		return nil, fmt.Errorf("invalid output format %q, must be one of 'json' or 'yaml'", o.OutputFormat)
	}

	return &ValidatedProvisionOptions{
		validatedProvisionOptions: &validatedProvisionOptions{
			RawProvisionOptions: o,
			Environment:         env,
			Format:              format,
		},
	}, nil
}

func (o *ValidatedProvisionOptions) Complete(ctx context.Context) (*ProvisionOptions, error) {
	if err := azauth.Setup(ctx); err != nil {
		return nil, fmt.Errorf("failed to set up authentication: %w", err)
	}
	credential, err := azauth.GetAzureTokenCredentials()
	if err != nil {
		return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
	}

	subscription, err := azure.ResolveSubscription(ctx, credential, o.Environment.Subscription)
	if err != nil {
		return nil, err
	}

	clients, err := azure.NewClients(subscription.ID, credential)
	if err != nil {
		return nil, err
	}
	graphClient, err := graph.NewClient(credential)
	if err != nil {
		return nil, err
	}

	return &ProvisionOptions{
		completedProvisionOptions: &completedProvisionOptions{
			Environment:  o.Environment,
			Subscription: subscription,
			Provisioner:  testenv.NewProvisioner(clients, graphClient),
			StateFile:    o.StateFile,
			Format:       o.Format,
		},
	}, nil
}

// provisionOutput is what a successful run prints. The password appears here
// and nowhere else; it is not part of the state file.
type provisionOutput struct {
	State    *testenv.State `json:"state"`
	AppID    string         `json:"appId"`
	Password string         `json:"password"`
}

func (o *ProvisionOptions) ProvisionEnvironment(ctx context.Context) error {
	logger := logr.FromContextOrDiscard(ctx)
	logger.Info("Provisioning environment", "subscription", o.Subscription.DisplayName, "subscriptionId", o.Subscription.ID)

	result, runErr := o.Provisioner.Provision(ctx, o.Environment, o.Subscription.ID)

	// The state file is written even when provisioning failed partway, so
	// the teardown command can remove whatever was created.
	if result != nil && result.State != nil {
		if err := result.State.Write(o.StateFile); err != nil {
			return fmt.Errorf("failed to write state file %s: %w", o.StateFile, err)
		}
		logger.Info("Wrote state file", "path", o.StateFile)
	}
	if runErr != nil {
		return runErr
	}

	rendered, err := output.Render(o.Format, provisionOutput{
		State:    result.State,
		AppID:    result.Principal.AppID,
		Password: result.Credential.Password,
	})
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}
