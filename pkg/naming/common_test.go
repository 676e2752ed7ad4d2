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

package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuffixedName(t *testing.T) {
	for _, testCase := range []struct {
		name             string
		prefix           string
		suffixDigestArgs []string
		maxLength        int
		suffixLength     int
		expected         string
		errorExpected    bool
	}{
		{
			name:             "no suffix",
			prefix:           "prefix",
			suffixDigestArgs: []string{},
			maxLength:        10,
			expected:         "prefix",
		},
		{
			name:             "no suffix - too long",
			prefix:           "prefix",
			suffixDigestArgs: []string{},
			maxLength:        4,
			expected:         "",
			errorExpected:    true,
		},
		{
			name:             "with suffix",
			prefix:           "prefix",
			suffixDigestArgs: []string{"arg1"},
			maxLength:        10,
			suffixLength:     3,
			expected:         "prefix-84f",
		},
		{
			name:             "with suffix - too long",
			prefix:           "prefix",
			suffixDigestArgs: []string{"arg1"},
			maxLength:        4,
			suffixLength:     3,
			expected:         "",
			errorExpected:    true,
		},
		{
			name:             "with multiple suffix args",
			prefix:           "prefix",
			suffixDigestArgs: []string{"arg1", "arg2"},
			maxLength:        10,
			suffixLength:     3,
			expected:         "prefix-cb9",
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			resourceName, err := suffixedName(testCase.prefix, "-", testCase.maxLength, testCase.suffixLength, testCase.suffixDigestArgs...)
			if testCase.errorExpected {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, testCase.expected, resourceName)
		})
	}
}

func TestEventHubsNamespaceName(t *testing.T) {
	name, err := EventHubsNamespaceName("eh-e2e", 8, "sub", "group")
	assert.NoError(t, err)
	assert.Len(t, name, len("eh-e2e")+1+8)
	assert.Contains(t, name, "eh-e2e-")

	same, err := EventHubsNamespaceName("eh-e2e", 8, "sub", "group")
	assert.NoError(t, err)
	assert.Equal(t, name, same, "names must be deterministic for the same inputs")
}
