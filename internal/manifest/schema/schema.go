// Copyright 2026 The Mapflow Authors
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

// Package schema holds the embedded JSON schemas for manifest validation.
package schema

import (
	"embed"
	"fmt"
	"sort"
)

// FS is the embedded filesystem containing the schema files.
//
//go:embed **/*.json
var fs embed.FS

// GetManifestSchema retrieves the JSON schema for validating manifests at a
// specific version. The schema file must be named "manifest.json" within the
// version directory.
func GetManifestSchema(version string) ([]byte, error) {
	fileName := version + "/manifest.json"
	if _, err := fs.Open(fileName); err != nil {
		return nil, fmt.Errorf("manifest schema not found for version %s", version)
	}
	return fs.ReadFile(fileName)
}

// GetValidManifestVersions returns the sorted list of versions that have an
// embedded manifest schema.
func GetValidManifestVersions() ([]string, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	var versions []string
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}
	sort.Strings(versions)
	return versions, nil
}
