// Package render draws the command line output: titles, bordered tables and
// small bars, plus money and percentage formatting.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Tone colors a status message by how a budget is doing.
type Tone int

const (
	Within Tone = iota
	Near
	Over
)

var (
	accent = lipgloss.Color("#3AA99F")
	faint  = lipgloss.Color("#575653")

	tones = map[Tone]lipgloss.Style{
		Within: lipgloss.NewStyle().Foreground(lipgloss.Color("#879A39")),
		Near:   lipgloss.NewStyle().Foreground(lipgloss.Color("#DA702C")),
		Over:   lipgloss.NewStyle().Foreground(lipgloss.Color("#D14D41")),
	}

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6F6E69"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Table is a bordered text table. The first column is left-aligned, the rest
// right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Separator is a row that renders blank, setting totals apart.
var Separator = []string{"---"}

// Title renders a bold title in a rounded box.
func Title(title string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(faint).
		Padding(0, 1).
		Render(title)
}

// Heading renders a section heading.
func Heading(s string) string {
	return headingStyle.Render(s)
}

// Muted renders secondary text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// Status colors s by tone.
func Status(s string, t Tone) string {
	return tones[t].Render(s)
}

// RenderTable renders t. An empty table renders as "".
func RenderTable(t Table) string {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return ""
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) == 1 && row[0] == Separator[0] {
			row = make([]string, max(len(t.Headers), 1))
		}
		rows[i] = row
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(faint)).
		Headers(t.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cellStyle
			if col > 0 {
				s = s.Align(lipgloss.Right)
			}
			if row == table.HeaderRow {
				s = s.Bold(true).Foreground(accent)
			}
			return s
		})

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headingStyle.Render(t.Title) + "\n")
	}
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	return b.String()
}

// ProgressBar renders a bar for ratio, clamped to [0, 1], followed by the
// percentage. The bar turns orange from 90% and red past 100%.
func ProgressBar(ratio float64, width int) string {
	filled := int(max(0, min(ratio, 1)) * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	tone := Within
	switch {
	case ratio > 1:
		tone = Over
	case ratio >= 0.9:
		tone = Near
	}
	return fmt.Sprintf("[%s] %s", Status(bar, tone), Percent(ratio*100))
}

// Sparkline renders values as a row of block characters scaled to the
// largest value.
func Sparkline(values []float64) string {
	const levels = "▁▂▃▄▅▆▇█"
	blocks := []rune(levels)

	top := 0.0
	for _, v := range values {
		top = max(top, v)
	}
	if top == 0 {
		top = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / top * float64(len(blocks)-1))
		b.WriteRune(blocks[max(0, min(idx, len(blocks)-1))])
	}
	return b.String()
}
