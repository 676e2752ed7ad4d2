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

package graph

import (
	"context"
	"fmt"

	"github.com/microsoftgraph/msgraph-sdk-go/models"

	"github.com/Azure/eventhubs-testenv/pkg/secret"
)

// ServicePrincipal is the created identity. ObjectID is what role assignments
// bind to; AppObjectID is the application object needed to delete the
// registration again.
type ServicePrincipal struct {
	ObjectID    string
	AppID       string
	AppObjectID string
	DisplayName string
}

// CreateServicePrincipal registers an application carrying the generated
// password credential, then creates the service principal for it. Role
// assignments against the principal are not expected to work until the
// directory write has propagated; callers own that wait.
func (c *Client) CreateServicePrincipal(ctx context.Context, displayName string, credential secret.Credential) (*ServicePrincipal, error) {
	passwordCredential := models.NewPasswordCredential()
	passwordCredential.SetDisplayName(&displayName)
	passwordCredential.SetSecretText(&credential.Password)
	passwordCredential.SetStartDateTime(&credential.StartDate)
	passwordCredential.SetEndDateTime(&credential.EndDate)

	app := models.NewApplication()
	app.SetDisplayName(&displayName)
	app.SetPasswordCredentials([]models.PasswordCredentialable{passwordCredential})

	createdApp, err := c.sdk.Applications().Post(ctx, app, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create application %q: %w", displayName, err)
	}
	if createdApp == nil || createdApp.GetAppId() == nil || createdApp.GetId() == nil {
		return nil, fmt.Errorf("application %q was not created", displayName)
	}

	principal := models.NewServicePrincipal()
	principal.SetAppId(createdApp.GetAppId())

	createdPrincipal, err := c.sdk.ServicePrincipals().Post(ctx, principal, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create service principal for %q: %w", displayName, err)
	}
	if createdPrincipal == nil || createdPrincipal.GetId() == nil {
		return nil, fmt.Errorf("service principal for %q was not created", displayName)
	}

	return &ServicePrincipal{
		ObjectID:    *createdPrincipal.GetId(),
		AppID:       *createdApp.GetAppId(),
		AppObjectID: *createdApp.GetId(),
		DisplayName: displayName,
	}, nil
}

// DeleteApplication removes the application registration; deleting it also
// removes the service principal and the attached credential.
func (c *Client) DeleteApplication(ctx context.Context, appObjectID string) error {
	if err := c.sdk.Applications().ByApplicationId(appObjectID).Delete(ctx, nil); err != nil {
		return fmt.Errorf("failed to delete application %s: %w", appObjectID, err)
	}
	return nil
}
