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
	"context"

	"github.com/go-logr/logr"
)

// TeardownOutcome records one removal attempt.
type TeardownOutcome struct {
	Resource string `json:"resource"`
	Name     string `json:"name"`
	// Error is the failure message; empty on success. A failed removal needs
	// manual cleanup.
	Error string `json:"error,omitempty"`
}

// TeardownSummary aggregates the per-resource outcomes of a teardown run.
type TeardownSummary struct {
	Outcomes []TeardownOutcome `json:"outcomes"`
}

// Failed returns the outcomes that need manual cleanup.
func (s TeardownSummary) Failed() []TeardownOutcome {
	var failed []TeardownOutcome
	for _, outcome := range s.Outcomes {
		if outcome.Error != "" {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// Teardown removes, in reverse dependency order, the resources the given
// state says this tool created: event hub, then namespace, then resource
// group, then the application registration. Resources whose creation flag is
// unset are never touched. Every removal is attempted independently; a
// failure is recorded in the summary and does not stop the remaining steps.
func (p *Provisioner) Teardown(ctx context.Context, state *State) TeardownSummary {
	logger := logr.FromContextOrDiscard(ctx)

	summary := TeardownSummary{}
	record := func(resource, name string, err error) {
		outcome := TeardownOutcome{Resource: resource, Name: name}
		if err != nil {
			outcome.Error = err.Error()
			logger.Info("WARN: failed to remove resource, manual cleanup required", "resource", resource, "name", name, "error", err.Error())
		} else {
			logger.Info("Removed resource", "resource", resource, "name", name)
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	if state.CreatedEventHub {
		record("eventHub", state.EventHub, p.resources.DeleteEventHub(ctx, state.ResourceGroup, state.Namespace, state.EventHub))
	}
	if state.CreatedNamespace {
		record("namespace", state.Namespace, p.resources.DeleteNamespace(ctx, state.ResourceGroup, state.Namespace))
	}
	if state.CreatedResourceGroup {
		record("resourceGroup", state.ResourceGroup, p.resources.DeleteResourceGroup(ctx, state.ResourceGroup))
	}
	if state.PrincipalAppObjectID != "" {
		record("application", state.PrincipalAppObjectID, p.principals.DeleteApplication(ctx, state.PrincipalAppObjectID))
	}

	return summary
}
