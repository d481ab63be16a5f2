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

// Package cli provides shared helpers for the mapflow commands.
package cli

// Output format options
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
)

// OutputFormats lists the accepted values for the --output flag.
var OutputFormats = []string{OutputFormatTable, OutputFormatJSON}
