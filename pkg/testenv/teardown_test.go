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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullState() *State {
	return &State{
		SubscriptionID:       "sub",
		ResourceGroup:        "eh-e2e-rg",
		Namespace:            "eh-e2e-ns",
		EventHub:             "eh-e2e-hub",
		CreatedResourceGroup: true,
		CreatedNamespace:     true,
		CreatedEventHub:      true,
		PrincipalAppObjectID: "app-object-id",
	}
}

func TestTeardownRemovesEverythingInOrder(t *testing.T) {
	cloud := newFakeCloud()
	principals := &fakePrincipals{}

	summary := newTestProvisioner(cloud, principals).Teardown(context.Background(), fullState())
	assert.Empty(t, summary.Failed())

	// Contained resources go before their containers.
	assert.Equal(t, []string{
		"eventHub:eh-e2e-rg/eh-e2e-ns/eh-e2e-hub",
		"namespace:eh-e2e-rg/eh-e2e-ns",
		"resourceGroup:eh-e2e-rg",
	}, cloud.deleteCalls)
	assert.Equal(t, []string{"app-object-id"}, principals.deleted)
}

func TestTeardownSkipsResourcesNotCreatedByUs(t *testing.T) {
	cloud := newFakeCloud()
	principals := &fakePrincipals{}
	state := fullState()
	state.CreatedResourceGroup = false
	state.CreatedNamespace = false
	state.CreatedEventHub = false
	state.PrincipalAppObjectID = ""

	summary := newTestProvisioner(cloud, principals).Teardown(context.Background(), state)
	assert.Empty(t, summary.Outcomes)
	assert.Empty(t, cloud.deleteCalls)
	assert.Empty(t, principals.deleted)
}

func TestTeardownContinuesPastFailures(t *testing.T) {
	cloud := newFakeCloud()
	cloud.deleteErrs["namespace"] = fmt.Errorf("namespace is busy")
	principals := &fakePrincipals{}

	summary := newTestProvisioner(cloud, principals).Teardown(context.Background(), fullState())

	// The resource group delete still ran after the namespace failed.
	assert.Contains(t, cloud.deleteCalls, "resourceGroup:eh-e2e-rg")
	assert.Equal(t, []string{"app-object-id"}, principals.deleted)

	failed := summary.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "namespace", failed[0].Resource)
	assert.Contains(t, failed[0].Error, "namespace is busy")
}

func TestTeardownReportsEveryFailure(t *testing.T) {
	cloud := newFakeCloud()
	cloud.deleteErrs["eventHub"] = fmt.Errorf("hub delete rejected")
	cloud.deleteErrs["resourceGroup"] = fmt.Errorf("group delete rejected")
	principals := &fakePrincipals{deleteErr: fmt.Errorf("application gone wrong")}

	summary := newTestProvisioner(cloud, principals).Teardown(context.Background(), fullState())
	require.Len(t, summary.Outcomes, 4)
	assert.Len(t, summary.Failed(), 3)
}
