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

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// Subscription is a resolved subscription reference. It is immutable after
// resolution; all later calls are scoped by its ID.
type Subscription struct {
	ID          string
	DisplayName string
}

// ResolveSubscription looks up a subscription by display name. A missing
// subscription is a caller configuration error, so there is no retry.
func ResolveSubscription(ctx context.Context, credential azcore.TokenCredential, displayName string) (Subscription, error) {
	client, err := armsubscriptions.NewClient(credential, nil)
	if err != nil {
		return Subscription{}, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return Subscription{}, fmt.Errorf("failed to get next page of subscriptions: %w", err)
		}
		for _, sub := range page.Value {
			if sub.DisplayName != nil && *sub.DisplayName == displayName && sub.SubscriptionID != nil {
				return Subscription{ID: *sub.SubscriptionID, DisplayName: displayName}, nil
			}
		}
	}

	return Subscription{}, fmt.Errorf("subscription with name %q not found", displayName)
}
