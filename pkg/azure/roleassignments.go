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
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	armauthorization "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v3"
	"github.com/google/uuid"
)

// AssignRole grants the named built-in role to a principal at the given ARM
// scope. Re-assigning an existing role is treated as success; detecting it
// upfront is unreliable, so we let the service tell us.
func (c *Clients) AssignRole(ctx context.Context, principalObjectID, roleName, scope string) error {
	roleDefinitionID, err := c.lookupRoleDefinitionID(ctx, scope, roleName)
	if err != nil {
		return err
	}

	parameters := armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			RoleDefinitionID: to.Ptr(roleDefinitionID),
			PrincipalID:      to.Ptr(principalObjectID),
			PrincipalType:    to.Ptr(armauthorization.PrincipalTypeServicePrincipal),
		},
	}

	_, err = c.roleAssignments.Create(ctx, scope, uuid.New().String(), parameters, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.ErrorCode == "RoleAssignmentExists" {
			return nil
		}
		return fmt.Errorf("failed to create role assignment %q for principal %s at %s: %w", roleName, principalObjectID, scope, err)
	}

	return nil
}

// lookupRoleDefinitionID resolves a role display name ("Azure Event Hubs Data
// Owner") to its role definition resource ID at the given scope.
func (c *Clients) lookupRoleDefinitionID(ctx context.Context, scope, roleName string) (string, error) {
	pager := c.roleDefinitions.NewListPager(scope, &armauthorization.RoleDefinitionsClientListOptions{
		Filter: to.Ptr(fmt.Sprintf("roleName eq '%s'", roleName)),
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to list role definitions for %q: %w", roleName, err)
		}
		for _, definition := range page.Value {
			if definition.ID != nil {
				return *definition.ID, nil
			}
		}
	}
	return "", fmt.Errorf("role definition %q not found at scope %s", roleName, scope)
}
