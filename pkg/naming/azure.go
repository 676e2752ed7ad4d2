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

// Azure Event Hubs namespace names are limited to 50 characters.
func EventHubsNamespaceName(prefix string, suffixLength int, suffixDigestArgs ...string) (string, error) {
	return suffixedName(prefix, "-", 50, suffixLength, suffixDigestArgs...)
}

// Event hub names inside a namespace allow up to 256 characters.
func EventHubName(prefix string, suffixLength int, suffixDigestArgs ...string) (string, error) {
	return suffixedName(prefix, "-", 256, suffixLength, suffixDigestArgs...)
}

// Resource group names allow up to 90 characters.
func ResourceGroupName(prefix string, suffixLength int, suffixDigestArgs ...string) (string, error) {
	return suffixedName(prefix, "-", 90, suffixLength, suffixDigestArgs...)
}
