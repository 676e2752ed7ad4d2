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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceType(t *testing.T) {
	rt, err := ParseResourceType("Microsoft.EventHub/Namespaces")
	require.NoError(t, err)
	assert.Equal(t, ResourceTypeEventHubNamespaces, rt)

	_, err = ParseResourceType("Microsoft.EventHub/Clusters")
	assert.ErrorContains(t, err, "Microsoft.EventHub/Clusters")
}

func TestResourceTypeProviderAndType(t *testing.T) {
	assert.Equal(t, "Microsoft.EventHub", ResourceTypeEventHubNamespaces.Provider())
	assert.Equal(t, "Namespaces", ResourceTypeEventHubNamespaces.Type())
}

func TestResourceTypeUnmarshalRejectsUnknown(t *testing.T) {
	var rt ResourceType
	require.NoError(t, rt.UnmarshalText([]byte("Microsoft.EventHub/Namespaces")))
	assert.Equal(t, ResourceTypeEventHubNamespaces, rt)

	assert.Error(t, rt.UnmarshalText([]byte("bogus")))
}
