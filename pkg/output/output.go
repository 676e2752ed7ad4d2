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

package output

import (
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"
)

// Format selects the serialization used for command output.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Render serializes v in the requested format.
func Render(format Format, v interface{}) (string, error) {
	switch format {
	case FormatJSON:
		return PrettyPrintJSON(v)
	case FormatYAML:
		return PrettyPrintYAML(v)
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func PrettyPrintJSON(v interface{}) (string, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func PrettyPrintYAML(v interface{}) (string, error) {
	yamlData, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(yamlData), nil
}
