// Package ui provides the rendering sinks and terminal components used by
// the CLI commands.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// BarSink renders progress as a styled label and a textual bar. It
// implements progress.Sink.
type BarSink struct {
	out      io.Writer
	barWidth int

	labelStyle lipgloss.Style
	barStyle   lipgloss.Style
	frameStyle lipgloss.Style
}

// NewBarSink creates a bar sink writing to out. A barWidth of 0 sizes the
// bar from the terminal, falling back to DefaultBarWidth.
func NewBarSink(out io.Writer, barWidth int) *BarSink {
	if barWidth <= 0 {
		barWidth = min(DefaultBarWidth, getTerminalWidth()/2)
		if barWidth <= 0 {
			barWidth = DefaultBarWidth
		}
	}
	return &BarSink{
		out:        out,
		barWidth:   barWidth,
		labelStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorBrightCyan)),
		barStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		frameStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightGray)),
	}
}

// WriteText prints the label on its own line.
func (b *BarSink) WriteText(text string) error {
	if _, err := fmt.Fprintln(b.out, b.labelStyle.Render(text)); err != nil {
		return fmt.Errorf("write label: %w", err)
	}
	return nil
}

// WriteProgress prints the bar. The drawn cells are clamped to the drawable
// range, but the percent keeps the raw fraction so out-of-range state stays
// visible.
func (b *BarSink) WriteProgress(fraction float64) error {
	filled := int(min(max(fraction, 0), 1) * float64(b.barWidth))
	empty := b.barWidth - filled

	line := fmt.Sprintf("%s%s%s%s %3.0f%%",
		b.frameStyle.Render("▕"),
		b.barStyle.Render(strings.Repeat(BarFilledCell, filled)),
		strings.Repeat(BarEmptyCell, empty),
		b.frameStyle.Render("▏"),
		fraction*100,
	)
	if _, err := fmt.Fprintln(b.out, line); err != nil {
		return fmt.Errorf("write bar: %w", err)
	}
	return nil
}

// getTerminalWidth returns the current terminal width
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return FallbackTerminalWidth
	}
	return width
}

// IsTerminal checks if the output is going to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
