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
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// ListSupportedRegions returns the set of regions in which the resource
// provider supports the given resource type, as reported by the provider
// metadata of this subscription.
func (c *Clients) ListSupportedRegions(ctx context.Context, resourceType ResourceType) (sets.Set[string], error) {
	provider, err := c.providers.Get(ctx, resourceType.Provider(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider metadata for %s: %w", resourceType.Provider(), err)
	}

	for _, rt := range provider.ResourceTypes {
		if rt.ResourceType == nil || !strings.EqualFold(*rt.ResourceType, resourceType.Type()) {
			continue
		}
		regions := sets.New[string]()
		for _, location := range rt.Locations {
			if location != nil {
				regions.Insert(normalizeRegion(*location))
			}
		}
		return regions, nil
	}

	return nil, fmt.Errorf("resource type %s not found in provider %s metadata", resourceType.Type(), resourceType.Provider())
}

// normalizeRegion converts a provider display-name location ("East US") into
// the canonical short region name ("eastus").
func normalizeRegion(location string) string {
	return strings.ToLower(strings.ReplaceAll(location, " ", ""))
}
