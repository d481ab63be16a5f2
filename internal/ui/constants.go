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

package ui

// Color constants for consistent styling
const (
	ColorBrightCyan  = "14"
	ColorRed         = "9"
	ColorYellow      = "11"
	ColorGreen       = "10"
	ColorGray        = "7"
	ColorBrightGray  = "8"
	ColorBrightWhite = "15"
)

// Bar rendering
const (
	// DefaultBarWidth is the number of cells in the progress bar when the
	// terminal width cannot be determined.
	DefaultBarWidth = 40

	// BarFilledCell and BarEmptyCell are the glyphs used for the bar body.
	BarFilledCell = "█"
	BarEmptyCell  = " "

	// FallbackTerminalWidth is used when stdout is not a terminal.
	FallbackTerminalWidth = 120
)

// Step status labels shown in the step table
const (
	StatusDone    = "done"
	StatusActive  = "active"
	StatusPending = "pending"
)
