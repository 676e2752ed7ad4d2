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

// Package naming derives deterministic, length-constrained Azure resource
// names from a prefix and a set of digest inputs, so that repeated runs with
// the same inputs address the same resources.
package naming

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

func suffixDigest(length int, strs ...string) (string, error) {
	combined := ""
	for _, s := range strs {
		combined += s
	}
	hash := sha256.Sum256([]byte(combined))
	hashedString := hex.EncodeToString(hash[:])
	if len(hashedString) < length {
		return "", fmt.Errorf("suffix digest does not have the required length of %d", length)
	}
	return hashedString[:length], nil
}

func suffixedName(prefix string, suffixDelim string, maxLength int, suffixLength int, suffixDigestArgs ...string) (string, error) {
	name := prefix
	if len(suffixDigestArgs) > 0 {
		suffixDigest, err := suffixDigest(suffixLength, suffixDigestArgs...)
		if err != nil {
			return "", err
		}
		name = prefix + suffixDelim + suffixDigest
	}
	if len(name) > maxLength {
		return "", fmt.Errorf("name '%s' is too long, max length is %d", name, maxLength)
	}
	return name, nil
}
