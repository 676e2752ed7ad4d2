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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"
)

func TestValidatePrincipalName(t *testing.T) {
	tests := []struct {
		name          string
		principalName string
		expectedError string
	}{
		{
			name:          "valid",
			principalName: "eh-e2e-principal",
		},
		{
			name:          "empty",
			principalName: "",
			expectedError: "must not be empty",
		},
		{
			name:          "inner space",
			principalName: "eh e2e",
			expectedError: "must not contain whitespace",
		},
		{
			name:          "tab",
			principalName: "eh\te2e",
			expectedError: "must not contain whitespace",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePrincipalName(tc.principalName)
			if tc.expectedError == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.expectedError)
			}
		})
	}
}

func TestValidateRegion(t *testing.T) {
	supported := sets.New[string]("westus", "eastus")

	assert.NoError(t, ValidateRegion("eastus", supported))

	err := ValidateRegion("centralus", supported)
	require.Error(t, err)
	// The supported regions are enumerated in sorted order.
	assert.Equal(t, `region "centralus" is not supported; valid regions: eastus, westus`, err.Error())
}
