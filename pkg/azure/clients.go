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

// Package azure wraps the ARM SDK clients used to provision and tear down an
// Event Hubs test environment. Every operation is scoped by the subscription
// the Clients value was built for; there is no ambient subscription state.
package azure

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	armauthorization "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v3"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/eventhub/armeventhub"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

const standardPollInterval = 10 * time.Second

// Clients bundles the ARM clients for a single subscription.
type Clients struct {
	SubscriptionID string

	resourceGroups  *armresources.ResourceGroupsClient
	providers       *armresources.ProvidersClient
	namespaces      *armeventhub.NamespacesClient
	eventHubs       *armeventhub.EventHubsClient
	roleDefinitions *armauthorization.RoleDefinitionsClient
	roleAssignments *armauthorization.RoleAssignmentsClient
}

// NewClients creates ARM clients bound to the given subscription.
func NewClients(subscriptionID string, credential azcore.TokenCredential) (*Clients, error) {
	resourceGroups, err := armresources.NewResourceGroupsClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	providers, err := armresources.NewProvidersClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create providers client: %w", err)
	}
	namespaces, err := armeventhub.NewNamespacesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create namespaces client: %w", err)
	}
	eventHubs, err := armeventhub.NewEventHubsClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create event hubs client: %w", err)
	}
	roleDefinitions, err := armauthorization.NewRoleDefinitionsClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create role definitions client: %w", err)
	}
	roleAssignments, err := armauthorization.NewRoleAssignmentsClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create role assignments client: %w", err)
	}

	return &Clients{
		SubscriptionID:  subscriptionID,
		resourceGroups:  resourceGroups,
		providers:       providers,
		namespaces:      namespaces,
		eventHubs:       eventHubs,
		roleDefinitions: roleDefinitions,
		roleAssignments: roleAssignments,
	}, nil
}

// ResourceGroupScope returns the ARM scope string for a resource group in
// this subscription.
func (c *Clients) ResourceGroupScope(resourceGroup string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", c.SubscriptionID, resourceGroup)
}

// NamespaceScope returns the ARM scope string for an Event Hubs namespace.
func (c *Clients) NamespaceScope(resourceGroup, namespace string) string {
	return fmt.Sprintf("%s/providers/%s/%s", c.ResourceGroupScope(resourceGroup), ResourceTypeEventHubNamespaces, namespace)
}

// IsNotFound reports whether err is an ARM 404 response.
func IsNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
