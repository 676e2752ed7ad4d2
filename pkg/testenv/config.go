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

// Package testenv orchestrates provisioning and teardown of an Event Hubs
// test environment: resource group, namespace, event hub, a service principal
// with a generated credential, and role assignments for it.
package testenv

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// DefaultNamespaceRole is granted at namespace scope when the environment
// does not configure roles explicitly.
const DefaultNamespaceRole = "Azure Event Hubs Data Owner"

// Environment describes the resources a single run provisions.
type Environment struct {
	// Subscription is the display name of the subscription to provision in.
	Subscription string `json:"subscription"`
	// ResourceGroup, Namespace and EventHub name the resources; Region is
	// where they are created.
	ResourceGroup string `json:"resourceGroup"`
	Namespace     string `json:"namespace"`
	EventHub      string `json:"eventHub"`
	Region        string `json:"region"`
	// PrincipalName is the display name for the service principal. It must
	// not contain whitespace.
	PrincipalName string `json:"principalName"`
	// NamespaceRoles are granted to the principal at namespace scope,
	// ResourceGroupRoles at resource group scope.
	NamespaceRoles     []string `json:"namespaceRoles,omitempty"`
	ResourceGroupRoles []string `json:"resourceGroupRoles,omitempty"`
}

// LoadEnvironment reads an environment definition from a YAML file and
// applies defaults.
func LoadEnvironment(path string) (*Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file %s: %w", path, err)
	}
	env := &Environment{}
	if err := yaml.UnmarshalStrict(data, env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment file %s: %w", path, err)
	}
	env.Default()
	return env, nil
}

// Default fills in the role defaults for an environment that does not
// configure any.
func (e *Environment) Default() {
	if len(e.NamespaceRoles) == 0 && len(e.ResourceGroupRoles) == 0 {
		e.NamespaceRoles = []string{DefaultNamespaceRole}
	}
}
