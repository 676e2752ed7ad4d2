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
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// EnsureResourceGroup fetches the resource group by name and creates it in
// the given location when absent. It returns true only when this call created
// the group, so teardown can tell pre-existing groups apart from ours.
func (c *Clients) EnsureResourceGroup(ctx context.Context, name, location string) (bool, error) {
	_, err := c.resourceGroups.Get(ctx, name, nil)
	if err == nil {
		return false, nil
	}
	if !IsNotFound(err) {
		return false, fmt.Errorf("failed to check if resource group %q exists: %w", name, err)
	}

	resp, err := c.resourceGroups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
	}, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create resource group %q in %q: %w", name, location, err)
	}
	if resp.Name == nil {
		return false, fmt.Errorf("resource group %q was not created", name)
	}

	return true, nil
}

// DeleteResourceGroup deletes a resource group and waits for the operation to
// complete. A group that is already gone is not an error.
func (c *Clients) DeleteResourceGroup(ctx context.Context, name string) error {
	poller, err := c.resourceGroups.BeginDelete(ctx, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete resource group %q: %w", name, err)
	}

	if _, err := poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{Frequency: standardPollInterval}); err != nil {
		return fmt.Errorf("failed waiting for resource group %q to finish deleting: %w", name, err)
	}
	return nil
}
