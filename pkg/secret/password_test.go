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

package secret

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countAny(s, chars string) int {
	n := 0
	for _, r := range s {
		if strings.ContainsRune(chars, r) {
			n++
		}
	}
	return n
}

func TestNewPasswordLengthAndClassCounts(t *testing.T) {
	for i := 0; i < 200; i++ {
		password, err := NewPassword()
		require.NoError(t, err)

		length := len(password)
		require.GreaterOrEqual(t, length, MinPasswordLength)
		require.LessOrEqual(t, length, MaxPasswordLength)

		quarter := length / 4
		assert.Equal(t, quarter, countAny(password, upperChars), "uppercase count in %q", password)
		assert.Equal(t, quarter, countAny(password, digitChars), "digit count in %q", password)
		assert.Equal(t, quarter, countAny(password, specialChars), "special count in %q", password)
		assert.Equal(t, length-3*quarter, countAny(password, lowerChars), "lowercase count in %q", password)
	}
}

func TestNewPasswordIsNotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		password, err := NewPassword()
		require.NoError(t, err)
		seen[password] = true
	}
	// 32 independent draws from a space this large collide with negligible
	// probability.
	assert.Greater(t, len(seen), 1)
}

func TestNewCredentialValidityWindow(t *testing.T) {
	before := time.Now().UTC()
	cred, err := NewCredential()
	require.NoError(t, err)
	after := time.Now().UTC()

	assert.NotEmpty(t, cred.Password)
	assert.False(t, cred.StartDate.Before(before))
	assert.False(t, cred.StartDate.After(after))
	assert.Equal(t, 2299, cred.EndDate.Year())
	assert.True(t, cred.EndDate.After(cred.StartDate))
}
