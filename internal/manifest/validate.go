// Package manifest provides loading and validation of the .mapflow.yaml
// configuration file.
package manifest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/mapflow-dev/mapflow/internal/manifest/schema"
)

// ValidateManifest validates the manifest object against the embedded JSON
// schema for the given version. This is a strict validation: unknown fields
// are not allowed.
func ValidateManifest(manifestObj map[string]any, version string) error {
	schemaBytes, err := schema.GetManifestSchema(version)
	if err != nil {
		return fmt.Errorf("failed to get manifest schema version %q: %w", version, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()

	schemaID := filepath.Join(version, "manifest.json")
	jsonSchema, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return fmt.Errorf("invalid manifest schema JSON for version %q: %w", version, err)
	}

	if err := compiler.AddResource(schemaID, jsonSchema); err != nil {
		return fmt.Errorf("failed to load manifest schema version %q: %w", version, err)
	}

	compiled, err := compiler.Compile(schemaID)
	if err != nil {
		return fmt.Errorf("failed to compile manifest schema version %q: %w", version, err)
	}

	if err := compiled.Validate(manifestObj); err != nil {
		return fmt.Errorf("manifest validation failed for schema version %q: %w", version, err)
	}
	return nil
}

// ValidateAPIVersion checks the manifest's apiVersion field for presence,
// type, and validity. Returns the apiVersion string if valid.
func ValidateAPIVersion(manifestObj map[string]any) (string, error) {
	validVersions, err := schema.GetValidManifestVersions()
	if err != nil {
		return "", fmt.Errorf("failed to get valid manifest versions: %w", err)
	}

	raw, ok := manifestObj["apiVersion"]
	if !ok {
		return "", fmt.Errorf("manifest is missing apiVersion, expected one of: %s", strings.Join(validVersions, ", "))
	}

	version, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("manifest apiVersion must be a string")
	}

	if !slices.Contains(validVersions, version) {
		return "", fmt.Errorf("unsupported apiVersion %q, expected one of: %s", version, strings.Join(validVersions, ", "))
	}
	return version, nil
}
