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

package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/eventhub/armeventhub"
)

// EnsureNamespace fetches the Event Hubs namespace by name and creates it
// when absent. Namespace creation is a long-running operation; the call does
// not return until the namespace has materialized. Returns true only when
// this call created the namespace.
func (c *Clients) EnsureNamespace(ctx context.Context, resourceGroup, name, location string) (bool, error) {
	_, err := c.namespaces.Get(ctx, resourceGroup, name, nil)
	if err == nil {
		return false, nil
	}
	if !IsNotFound(err) {
		return false, fmt.Errorf("failed to check if namespace %q exists: %w", name, err)
	}

	poller, err := c.namespaces.BeginCreateOrUpdate(ctx, resourceGroup, name, armeventhub.EHNamespace{
		Location: to.Ptr(location),
	}, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create namespace %q in %q: %w", name, location, err)
	}
	resp, err := poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{Frequency: standardPollInterval})
	if err != nil {
		return false, fmt.Errorf("failed waiting for namespace %q to be created: %w", name, err)
	}
	if resp.Name == nil {
		return false, fmt.Errorf("namespace %q was not created", name)
	}

	return true, nil
}

// DeleteNamespace deletes an Event Hubs namespace and waits for completion.
func (c *Clients) DeleteNamespace(ctx context.Context, resourceGroup, name string) error {
	poller, err := c.namespaces.BeginDelete(ctx, resourceGroup, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete namespace %q: %w", name, err)
	}

	if _, err := poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{Frequency: standardPollInterval}); err != nil {
		return fmt.Errorf("failed waiting for namespace %q to finish deleting: %w", name, err)
	}
	return nil
}

// EnsureEventHub fetches the hub by name within its namespace and creates it
// when absent. Returns true only when this call created the hub.
func (c *Clients) EnsureEventHub(ctx context.Context, resourceGroup, namespace, name string) (bool, error) {
	_, err := c.eventHubs.Get(ctx, resourceGroup, namespace, name, nil)
	if err == nil {
		return false, nil
	}
	if !IsNotFound(err) {
		return false, fmt.Errorf("failed to check if event hub %q exists: %w", name, err)
	}

	resp, err := c.eventHubs.CreateOrUpdate(ctx, resourceGroup, namespace, name, armeventhub.Eventhub{}, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create event hub %q in namespace %q: %w", name, namespace, err)
	}
	if resp.Name == nil {
		return false, fmt.Errorf("event hub %q was not created", name)
	}

	return true, nil
}

// DeleteEventHub deletes an event hub from its namespace.
func (c *Clients) DeleteEventHub(ctx context.Context, resourceGroup, namespace, name string) error {
	if _, err := c.eventHubs.Delete(ctx, resourceGroup, namespace, name, nil); err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete event hub %q: %w", name, err)
	}
	return nil
}
