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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/Azure/eventhubs-testenv/pkg/azure"
	"github.com/Azure/eventhubs-testenv/pkg/graph"
	"github.com/Azure/eventhubs-testenv/pkg/secret"
)

// fakeCloud is an in-memory stand-in for the ARM surface.
type fakeCloud struct {
	regions sets.Set[string]

	resourceGroups sets.Set[string]
	namespaces     sets.Set[string]
	eventHubs      sets.Set[string]

	// assignErrs is consumed one entry per AssignRole call; a missing entry
	// means success.
	assignErrs  []error
	assignCalls []string

	deleteCalls []string
	deleteErrs  map[string]error
}

func newFakeCloud(regions ...string) *fakeCloud {
	return &fakeCloud{
		regions:        sets.New[string](regions...),
		resourceGroups: sets.New[string](),
		namespaces:     sets.New[string](),
		eventHubs:      sets.New[string](),
		deleteErrs:     map[string]error{},
	}
}

func (f *fakeCloud) ensure(existing sets.Set[string], key string) (bool, error) {
	if existing.Has(key) {
		return false, nil
	}
	existing.Insert(key)
	return true, nil
}

func (f *fakeCloud) EnsureResourceGroup(ctx context.Context, name, location string) (bool, error) {
	return f.ensure(f.resourceGroups, name)
}

func (f *fakeCloud) EnsureNamespace(ctx context.Context, resourceGroup, name, location string) (bool, error) {
	return f.ensure(f.namespaces, resourceGroup+"/"+name)
}

func (f *fakeCloud) EnsureEventHub(ctx context.Context, resourceGroup, namespace, name string) (bool, error) {
	return f.ensure(f.eventHubs, resourceGroup+"/"+namespace+"/"+name)
}

func (f *fakeCloud) delete(kind, key string) error {
	f.deleteCalls = append(f.deleteCalls, kind+":"+key)
	return f.deleteErrs[kind]
}

func (f *fakeCloud) DeleteResourceGroup(ctx context.Context, name string) error {
	return f.delete("resourceGroup", name)
}

func (f *fakeCloud) DeleteNamespace(ctx context.Context, resourceGroup, name string) error {
	return f.delete("namespace", resourceGroup+"/"+name)
}

func (f *fakeCloud) DeleteEventHub(ctx context.Context, resourceGroup, namespace, name string) error {
	return f.delete("eventHub", resourceGroup+"/"+namespace+"/"+name)
}

func (f *fakeCloud) ListSupportedRegions(ctx context.Context, resourceType azure.ResourceType) (sets.Set[string], error) {
	return f.regions, nil
}

func (f *fakeCloud) AssignRole(ctx context.Context, principalObjectID, roleName, scope string) error {
	call := len(f.assignCalls)
	f.assignCalls = append(f.assignCalls, fmt.Sprintf("%s@%s", roleName, scope))
	if call < len(f.assignErrs) {
		return f.assignErrs[call]
	}
	return nil
}

func (f *fakeCloud) ResourceGroupScope(resourceGroup string) string {
	return "/subscriptions/sub/resourceGroups/" + resourceGroup
}

func (f *fakeCloud) NamespaceScope(resourceGroup, namespace string) string {
	return f.ResourceGroupScope(resourceGroup) + "/providers/Microsoft.EventHub/Namespaces/" + namespace
}

type fakePrincipals struct {
	created   []string
	deleted   []string
	createErr error
	deleteErr error
}

func (f *fakePrincipals) CreateServicePrincipal(ctx context.Context, displayName string, credential secret.Credential) (*graph.ServicePrincipal, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, displayName)
	return &graph.ServicePrincipal{
		ObjectID:    "sp-object-id",
		AppID:       "app-id",
		AppObjectID: "app-object-id",
		DisplayName: displayName,
	}, nil
}

func (f *fakePrincipals) DeleteApplication(ctx context.Context, appObjectID string) error {
	f.deleted = append(f.deleted, appObjectID)
	return f.deleteErr
}

func testEnvironment() *Environment {
	env := &Environment{
		Subscription:  "test-subscription",
		ResourceGroup: "eh-e2e-rg",
		Namespace:     "eh-e2e-ns",
		EventHub:      "eh-e2e-hub",
		Region:        "eastus",
		PrincipalName: "eh-e2e-principal",
	}
	env.Default()
	return env
}

func newTestProvisioner(cloud *fakeCloud, principals *fakePrincipals) *Provisioner {
	return NewProvisioner(cloud, principals, WithDelays(time.Millisecond, time.Millisecond))
}

func TestProvisionCreatesEverything(t *testing.T) {
	cloud := newFakeCloud("eastus", "westus")
	principals := &fakePrincipals{}

	result, err := newTestProvisioner(cloud, principals).Provision(context.Background(), testEnvironment(), "sub")
	require.NoError(t, err)

	assert.True(t, result.State.CreatedResourceGroup)
	assert.True(t, result.State.CreatedNamespace)
	assert.True(t, result.State.CreatedEventHub)
	assert.Equal(t, "app-id", result.State.PrincipalAppID)
	assert.Equal(t, []string{"eh-e2e-principal"}, principals.created)
	assert.NotEmpty(t, result.Credential.Password)

	require.Len(t, cloud.assignCalls, 1)
	assert.Equal(t, "Azure Event Hubs Data Owner@/subscriptions/sub/resourceGroups/eh-e2e-rg/providers/Microsoft.EventHub/Namespaces/eh-e2e-ns", cloud.assignCalls[0])
}

func TestProvisionSecondRunObservesExistingResources(t *testing.T) {
	cloud := newFakeCloud("eastus")
	env := testEnvironment()

	first, err := newTestProvisioner(cloud, &fakePrincipals{}).Provision(context.Background(), env, "sub")
	require.NoError(t, err)
	assert.True(t, first.State.CreatedResourceGroup)
	assert.True(t, first.State.CreatedNamespace)
	assert.True(t, first.State.CreatedEventHub)

	second, err := newTestProvisioner(cloud, &fakePrincipals{}).Provision(context.Background(), env, "sub")
	require.NoError(t, err)
	assert.False(t, second.State.CreatedResourceGroup)
	assert.False(t, second.State.CreatedNamespace)
	assert.False(t, second.State.CreatedEventHub)
}

func TestProvisionRejectsUnsupportedRegion(t *testing.T) {
	cloud := newFakeCloud("eastus", "westus")
	env := testEnvironment()
	env.Region = "centralus"

	_, err := newTestProvisioner(cloud, &fakePrincipals{}).Provision(context.Background(), env, "sub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eastus, westus")
	assert.Empty(t, cloud.resourceGroups, "no resource may be created when validation fails")
}

func TestProvisionRejectsPrincipalNameWithWhitespace(t *testing.T) {
	cloud := newFakeCloud("eastus")
	env := testEnvironment()
	env.PrincipalName = "bad name"

	_, err := newTestProvisioner(cloud, &fakePrincipals{}).Provision(context.Background(), env, "sub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whitespace")
	assert.Empty(t, cloud.resourceGroups)
}

func TestProvisionRoleAssignmentRetrySucceedsButRunStillFails(t *testing.T) {
	// A first-attempt failure triggers exactly one retry; even a successful
	// retry fails the run.
	cloud := newFakeCloud("eastus")
	cloud.assignErrs = []error{fmt.Errorf("principal not found"), nil}

	result, err := newTestProvisioner(cloud, &fakePrincipals{}).Provision(context.Background(), testEnvironment(), "sub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "succeeded on retry")
	assert.Len(t, cloud.assignCalls, 2)

	// The state still records everything that was created, so the caller can
	// tear it down.
	assert.True(t, result.State.CreatedResourceGroup)
	assert.Equal(t, "app-object-id", result.State.PrincipalAppObjectID)
}

func TestProvisionRoleAssignmentExhaustsRetry(t *testing.T) {
	boom := fmt.Errorf("principal not found")
	cloud := newFakeCloud("eastus")
	cloud.assignErrs = []error{boom, boom}

	_, err := newTestProvisioner(cloud, &fakePrincipals{}).Provision(context.Background(), testEnvironment(), "sub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhausted retries")
	assert.Len(t, cloud.assignCalls, 2, "exactly one retry, no more")
}

func TestProvisionAssignsResourceGroupScopedRoles(t *testing.T) {
	cloud := newFakeCloud("eastus")
	env := testEnvironment()
	env.ResourceGroupRoles = []string{"Reader"}
	env.NamespaceRoles = nil

	_, err := newTestProvisioner(cloud, &fakePrincipals{}).Provision(context.Background(), env, "sub")
	require.NoError(t, err)
	require.Len(t, cloud.assignCalls, 1)
	assert.Equal(t, "Reader@/subscriptions/sub/resourceGroups/eh-e2e-rg", cloud.assignCalls[0])
}
