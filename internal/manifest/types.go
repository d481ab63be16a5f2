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

package manifest

// APIVersionV1Alpha1 is the current manifest schema version.
const APIVersionV1Alpha1 = "v1-alpha.1"

// Manifest is the typed form of a .mapflow.yaml file.
type Manifest struct {
	APIVersion string        `json:"apiVersion"`
	Steps      []string      `json:"steps,omitempty"`
	Clamp      bool          `json:"clamp,omitempty"`
	Store      StoreConfig   `json:"store,omitempty"`
	Session    SessionConfig `json:"session,omitempty"`
}

// StoreConfig selects where session state lives.
type StoreConfig struct {
	// Path is the SQLite database file. Empty selects the in-memory store.
	Path string `json:"path,omitempty"`
}

// SessionConfig carries session defaults.
type SessionConfig struct {
	// Default is the session ID used when none is given on the command line.
	Default string `json:"default,omitempty"`
}
