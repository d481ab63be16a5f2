package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"sigs.k8s.io/yaml"

	"github.com/mapflow-dev/mapflow/internal/session"
	"github.com/mapflow-dev/mapflow/internal/workflow"
)

const (
	// DefaultManifestPath is where Load looks when no path is given.
	DefaultManifestPath = ".mapflow.yaml"
)

// Environment variable overrides, loaded from the process environment (and
// .env via godotenv in the command layer) after the manifest file.
const (
	EnvStorePath      = "MAPFLOW_STORE"
	EnvDefaultSession = "MAPFLOW_SESSION"
	EnvClamp          = "MAPFLOW_CLAMP"
)

// Defaults returns the manifest used when no file is present: the built-in
// stages, passthrough step indices, and an in-memory store.
func Defaults() *Manifest {
	return &Manifest{
		APIVersion: APIVersionV1Alpha1,
		Session:    SessionConfig{Default: session.DefaultSessionID},
	}
}

// Load reads, validates, and decodes the manifest at path. A missing file at
// the default path is not an error; the built-in defaults are returned.
// A missing file at an explicitly given path is.
func Load(path string) (*Manifest, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultManifestPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest %q: %w", path, err)
	}

	return Parse(data)
}

// Parse validates raw manifest YAML against its declared schema version and
// decodes it onto the typed struct.
func Parse(data []byte) (*Manifest, error) {
	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("parse manifest YAML: %w", err)
	}

	version, err := ValidateAPIVersion(obj)
	if err != nil {
		return nil, err
	}

	if err := ValidateManifest(obj, version); err != nil {
		return nil, err
	}

	m := Defaults()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  m,
		TagName: "json",
	})
	if err != nil {
		return nil, fmt.Errorf("build manifest decoder: %w", err)
	}
	if err := decoder.Decode(obj); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	if m.Session.Default == "" {
		m.Session.Default = session.DefaultSessionID
	}

	return m, nil
}

// ApplyEnvOverrides layers MAPFLOW_* environment variables over the
// manifest. Flags still take precedence over both in the command layer.
func (m *Manifest) ApplyEnvOverrides() error {
	if v, ok := os.LookupEnv(EnvStorePath); ok {
		m.Store.Path = v
	}
	if v, ok := os.LookupEnv(EnvDefaultSession); ok && v != "" {
		m.Session.Default = v
	}
	if v, ok := os.LookupEnv(EnvClamp); ok {
		clamp, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvClamp, v, err)
		}
		m.Clamp = clamp
	}
	return nil
}

// Registry builds the step registry configured by the manifest, or the
// built-in default when the manifest does not name steps.
func (m *Manifest) Registry() (*workflow.Registry, error) {
	if len(m.Steps) == 0 {
		return workflow.Default(), nil
	}
	return workflow.New(m.Steps)
}

// Save writes the manifest to a YAML file at the specified path.
func Save(m *Manifest, path string) error {
	if path == "" {
		path = DefaultManifestPath
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest %q: %w", path, err)
	}
	return nil
}
