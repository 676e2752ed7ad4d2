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
	"os"

	"sigs.k8s.io/yaml"
)

// State records what a provisioning run created, so a later teardown removes
// only resources this tool created and never pre-existing ones. It carries no
// secrets.
type State struct {
	SubscriptionID string `json:"subscriptionId"`

	ResourceGroup string `json:"resourceGroup"`
	Namespace     string `json:"namespace"`
	EventHub      string `json:"eventHub"`

	CreatedResourceGroup bool `json:"createdResourceGroup"`
	CreatedNamespace     bool `json:"createdNamespace"`
	CreatedEventHub      bool `json:"createdEventHub"`

	// PrincipalAppObjectID identifies the application registration created
	// for this run; empty when principal creation never happened.
	PrincipalAppObjectID string `json:"principalAppObjectId,omitempty"`
	PrincipalAppID       string `json:"principalAppId,omitempty"`
}

// LoadState reads a state file written by a previous provisioning run.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}
	state := &State{}
	if err := yaml.UnmarshalStrict(data, state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state file %s: %w", path, err)
	}
	return state, nil
}

// Write persists the state to a YAML file.
func (s *State) Write(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", path, err)
	}
	return nil
}
