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
	"fmt"
	"strings"
	"unicode"

	"k8s.io/apimachinery/pkg/util/sets"
)

// ValidatePrincipalName rejects empty names and names containing whitespace;
// the directory accepts them but downstream automation that passes the name
// around unquoted does not.
func ValidatePrincipalName(name string) error {
	if name == "" {
		return fmt.Errorf("principal name must not be empty")
	}
	if strings.ContainsFunc(name, unicode.IsSpace) {
		return fmt.Errorf("principal name %q must not contain whitespace", name)
	}
	return nil
}

// ValidateRegion checks the chosen region against the regions the resource
// provider supports. The error enumerates every valid region.
func ValidateRegion(region string, supported sets.Set[string]) error {
	if supported.Has(region) {
		return nil
	}
	return fmt.Errorf("region %q is not supported; valid regions: %s", region, strings.Join(sets.List(supported), ", "))
}
