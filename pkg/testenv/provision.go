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

package testenv

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/Azure/eventhubs-testenv/pkg/azure"
	"github.com/Azure/eventhubs-testenv/pkg/graph"
	"github.com/Azure/eventhubs-testenv/pkg/retry"
	"github.com/Azure/eventhubs-testenv/pkg/secret"
)

const (
	// DefaultPropagationDelay is how long to wait after creating the service
	// principal before its first role assignment. This is a fixed-latency
	// approximation of directory propagation, not a readiness poll.
	DefaultPropagationDelay = 60 * time.Second
	// DefaultRetryDelay is the wait before the single role-assignment retry.
	DefaultRetryDelay = 60 * time.Second
)

// ResourceClient is the ARM surface the orchestrator drives. *azure.Clients
// implements it.
type ResourceClient interface {
	EnsureResourceGroup(ctx context.Context, name, location string) (bool, error)
	EnsureNamespace(ctx context.Context, resourceGroup, name, location string) (bool, error)
	EnsureEventHub(ctx context.Context, resourceGroup, namespace, name string) (bool, error)

	DeleteResourceGroup(ctx context.Context, name string) error
	DeleteNamespace(ctx context.Context, resourceGroup, name string) error
	DeleteEventHub(ctx context.Context, resourceGroup, namespace, name string) error

	ListSupportedRegions(ctx context.Context, resourceType azure.ResourceType) (sets.Set[string], error)
	AssignRole(ctx context.Context, principalObjectID, roleName, scope string) error

	ResourceGroupScope(resourceGroup string) string
	NamespaceScope(resourceGroup, namespace string) string
}

// PrincipalClient is the directory surface the orchestrator drives.
// *graph.Client implements it.
type PrincipalClient interface {
	CreateServicePrincipal(ctx context.Context, displayName string, credential secret.Credential) (*graph.ServicePrincipal, error)
	DeleteApplication(ctx context.Context, appObjectID string) error
}

// Provisioner runs the provisioning and teardown sequences. All state that
// crosses the two phases lives in the State value it returns; the Provisioner
// itself is stateless.
type Provisioner struct {
	resources  ResourceClient
	principals PrincipalClient

	propagationDelay time.Duration
	retryDelay       time.Duration
}

// Option customizes a Provisioner.
type Option func(*Provisioner)

// WithDelays overrides the propagation and retry delays. Tests use this to
// avoid minute-long sleeps.
func WithDelays(propagation, retryDelay time.Duration) Option {
	return func(p *Provisioner) {
		p.propagationDelay = propagation
		p.retryDelay = retryDelay
	}
}

func NewProvisioner(resources ResourceClient, principals PrincipalClient, opts ...Option) *Provisioner {
	p := &Provisioner{
		resources:        resources,
		principals:       principals,
		propagationDelay: DefaultPropagationDelay,
		retryDelay:       DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is what a successful provisioning run hands back to the caller: the
// teardown state plus the principal and its secret, which exist nowhere else.
type Result struct {
	State      *State
	Principal  *graph.ServicePrincipal
	Credential secret.Credential
}

// Provision runs the full sequence: validate, ensure resource group,
// namespace and event hub, create the service principal, wait out directory
// propagation, then assign the configured roles.
//
// The returned State is non-nil even on error so the caller can tear down
// whatever was created before the failure; nothing is rolled back here.
func (p *Provisioner) Provision(ctx context.Context, env *Environment, subscriptionID string) (*Result, error) {
	logger := logr.FromContextOrDiscard(ctx)

	result := &Result{
		State: &State{
			SubscriptionID: subscriptionID,
			ResourceGroup:  env.ResourceGroup,
			Namespace:      env.Namespace,
			EventHub:       env.EventHub,
		},
	}

	if err := ValidatePrincipalName(env.PrincipalName); err != nil {
		return result, err
	}
	supportedRegions, err := p.resources.ListSupportedRegions(ctx, azure.ResourceTypeEventHubNamespaces)
	if err != nil {
		return result, fmt.Errorf("failed to list supported regions: %w", err)
	}
	if err := ValidateRegion(env.Region, supportedRegions); err != nil {
		return result, err
	}

	created, err := p.resources.EnsureResourceGroup(ctx, env.ResourceGroup, env.Region)
	if err != nil {
		return result, err
	}
	result.State.CreatedResourceGroup = created
	logger.Info("Ensured resource group", "name", env.ResourceGroup, "created", created)

	created, err = p.resources.EnsureNamespace(ctx, env.ResourceGroup, env.Namespace, env.Region)
	if err != nil {
		return result, err
	}
	result.State.CreatedNamespace = created
	logger.Info("Ensured namespace", "name", env.Namespace, "created", created)

	created, err = p.resources.EnsureEventHub(ctx, env.ResourceGroup, env.Namespace, env.EventHub)
	if err != nil {
		return result, err
	}
	result.State.CreatedEventHub = created
	logger.Info("Ensured event hub", "name", env.EventHub, "created", created)

	credential, err := secret.NewCredential()
	if err != nil {
		return result, fmt.Errorf("failed to generate credential: %w", err)
	}

	principal, err := p.principals.CreateServicePrincipal(ctx, env.PrincipalName, credential)
	if err != nil {
		return result, err
	}
	result.State.PrincipalAppObjectID = principal.AppObjectID
	result.State.PrincipalAppID = principal.AppID
	result.Principal = principal
	result.Credential = credential
	logger.Info("Created service principal", "displayName", principal.DisplayName, "appId", principal.AppID)

	logger.Info("Waiting for directory propagation", "delay", p.propagationDelay)
	if err := sleep(ctx, p.propagationDelay); err != nil {
		return result, err
	}

	for _, role := range env.ResourceGroupRoles {
		scope := p.resources.ResourceGroupScope(env.ResourceGroup)
		if err := p.assignRole(ctx, principal.ObjectID, role, scope); err != nil {
			return result, err
		}
	}
	for _, role := range env.NamespaceRoles {
		scope := p.resources.NamespaceScope(env.ResourceGroup, env.Namespace)
		if err := p.assignRole(ctx, principal.ObjectID, role, scope); err != nil {
			return result, err
		}
	}

	return result, nil
}

// assignRole creates a role assignment with exactly one retry after a fixed
// delay. A role assignment that needed the retry fails the run even when the
// retry itself succeeded: propagation was already unreliable at that point
// and the caller is expected to start over.
func (p *Provisioner) assignRole(ctx context.Context, principalObjectID, roleName, scope string) error {
	logger := logr.FromContextOrDiscard(ctx)

	outcome := retry.Once(ctx, p.retryDelay, func(ctx context.Context) error {
		return p.resources.AssignRole(ctx, principalObjectID, roleName, scope)
	})
	if !outcome.Retried() {
		logger.Info("Assigned role", "role", roleName, "scope", scope)
		return nil
	}
	return fmt.Errorf("role assignment %q at %s %s after %d attempts: %w", roleName, scope, outcome.Result, outcome.Attempts, outcome.Err)
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
