// Package chart renders horizontal bar charts for search analytics.
// Output adapts to the destination: styled runes on a terminal, plain
// text everywhere else, so charts stay greppable when piped.
package chart

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	barFilledChar = "█"
	barEmptyChar  = "░"

	defaultWidth = 80
	minBarWidth  = 10
	barGutter    = 2 // columns between label, bar, and value
)

func titleColor() lipgloss.Color  { return lipgloss.Color("39") }
func filledColor() lipgloss.Color { return lipgloss.Color("42") }
func emptyColor() lipgloss.Color  { return lipgloss.Color("240") }

// Bar is one labeled value in a chart.
type Bar struct {
	Label string
	Value float64
}

// Renderer draws bar charts to Out. Width is the total chart width in
// columns; zero means detect from the terminal. Styled colors the bars
// through lipgloss.
type Renderer struct {
	Out    io.Writer
	Width  int
	Styled bool
}

// New creates a Renderer for out, styled when out is a terminal.
func New(out io.Writer) *Renderer {
	return &Renderer{Out: out, Styled: isWriterTerminal(out)}
}

// Render draws one bar per entry, in the given order, each scaled
// against the largest value. formatValue renders the numeric suffix;
// nil falls back to plain formatting. An empty series prints a notice
// and returns nil.
func (r *Renderer) Render(title string, bars []Bar, formatValue func(float64) string) error {
	if len(bars) == 0 {
		_, err := fmt.Fprintln(r.Out, "No search data to plot.")
		return err
	}
	if formatValue == nil {
		formatValue = func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	}

	width := r.Width
	if width <= 0 {
		width = terminalWidth(r.Out)
	}

	labelWidth := 0
	valueWidth := 0
	maxValue := 0.0
	values := make([]string, len(bars))
	for i, b := range bars {
		values[i] = formatValue(b.Value)
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
		valueWidth = max(valueWidth, lipgloss.Width(values[i]))
		maxValue = max(maxValue, b.Value)
	}

	barWidth := width - labelWidth - valueWidth - 2*barGutter
	barWidth = max(barWidth, minBarWidth)

	if title != "" {
		line := title
		if r.Styled {
			line = lipgloss.NewStyle().Bold(true).Foreground(titleColor()).Render(line)
		}
		if _, err := fmt.Fprintf(r.Out, "%s\n\n", line); err != nil {
			return err
		}
	}

	filledStyle := lipgloss.NewStyle().Foreground(filledColor())
	emptyStyle := lipgloss.NewStyle().Foreground(emptyColor())

	for i, b := range bars {
		filledWidth := 0
		if maxValue > 0 {
			filledWidth = int(b.Value / maxValue * float64(barWidth))
		}
		// A nonzero value always shows at least one filled cell.
		if b.Value > 0 && filledWidth == 0 {
			filledWidth = 1
		}

		filled := strings.Repeat(barFilledChar, filledWidth)
		empty := strings.Repeat(barEmptyChar, barWidth-filledWidth)
		if r.Styled {
			filled = filledStyle.Render(filled)
			empty = emptyStyle.Render(empty)
		}

		if _, err := fmt.Fprintf(r.Out, "%s  %s%s  %s\n", padRight(b.Label, labelWidth), filled, empty, padLeft(values[i], valueWidth)); err != nil {
			return err
		}
	}
	return nil
}

// padRight pads s with spaces to width display columns. fmt's %-*s
// pads by byte count, which drifts on multibyte labels such as
// "Padmé Amidala".
func padRight(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// isWriterTerminal reports whether w refers to a terminal. Buffers and
// pipes never do, which keeps test and piped output plain.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// terminalWidth returns the column width of w's terminal, or a
// fallback when w is not a terminal or the size query fails.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}
