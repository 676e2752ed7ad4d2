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

package azauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/go-logr/logr"
)

const (
	envAzureClientID      = "AZURE_CLIENT_ID"
	envAzureTenantID      = "AZURE_TENANT_ID"
	envActionsTokenURL    = "ACTIONS_ID_TOKEN_REQUEST_URL"
	envActionsTokenSecret = "ACTIONS_ID_TOKEN_REQUEST_TOKEN"

	federationRefreshInterval = 5 * time.Minute
)

func githubAuthSupported() bool {
	for _, name := range []string{envAzureClientID, envAzureTenantID, envActionsTokenURL, envActionsTokenSecret} {
		if _, ok := os.LookupEnv(name); !ok {
			return false
		}
	}
	return true
}

// setupGithubFederationRefresher logs in with a federated GitHub ID token and
// keeps the az session fresh for as long as the context lives. The GitHub ID
// token is short-lived, so a one-time login would expire mid-run.
func setupGithubFederationRefresher(ctx context.Context) error {
	logger := logr.FromContextOrDiscard(ctx)
	clientID := os.Getenv(envAzureClientID)
	tenantID := os.Getenv(envAzureTenantID)
	requestURL := os.Getenv(envActionsTokenURL)
	requestToken := os.Getenv(envActionsTokenSecret)

	if err := refreshGithubFederatedSession(ctx, clientID, tenantID, requestURL, requestToken); err != nil {
		return fmt.Errorf("failed to refresh Azure session with federated GitHub ID token: %w", err)
	}

	go func() {
		ticker := time.NewTicker(federationRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := refreshGithubFederatedSession(ctx, clientID, tenantID, requestURL, requestToken); err != nil {
					logger.Error(err, "failed to refresh Azure session with federated GitHub ID token")
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func refreshGithubFederatedSession(ctx context.Context, clientID, tenantID, requestURL, requestToken string) error {
	logger := logr.FromContextOrDiscard(ctx)
	logger.V(7).Info("Refreshing Azure session with federated GitHub ID token")

	token, err := getGithubIDToken(ctx, requestURL, requestToken)
	if err != nil {
		return fmt.Errorf("failed to get GitHub ID token: %w", err)
	}

	cmd := exec.CommandContext(ctx, "az", "login", "--service-principal", "--username", clientID, "--tenant", tenantID, "--federated-token", token)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to run az login: %s %v", string(output), err)
	}
	logger.V(7).Info("Azure session refreshed with federated GitHub ID token")
	return nil
}

func getGithubIDToken(ctx context.Context, requestURL, requestToken string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", requestToken))
	q := req.URL.Query()
	q.Add("audience", "api://AzureADTokenExchange")
	req.URL.RawQuery = q.Encode()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get ID token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get ID token: status code %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	var tokenResponse struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(body, &tokenResponse); err != nil {
		return "", fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return tokenResponse.Value, nil
}
